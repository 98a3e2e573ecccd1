// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/litreview/internal/engine"
)

// InfoReader reads the embedded document information dictionary.
type InfoReader interface {
	Info(path string) (engine.EmbeddedMetadata, error)
}

// PDFInfoReader reads the information dictionary with pdfcpu.
type PDFInfoReader struct{}

// Info implements InfoReader.
func (PDFInfoReader) Info(path string) (engine.EmbeddedMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return engine.EmbeddedMetadata{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return engine.EmbeddedMetadata{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return engine.EmbeddedMetadata{
		Title:        ctx.XRefTable.Title,
		Author:       ctx.XRefTable.Author,
		CreationDate: ctx.XRefTable.CreationDate,
	}, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/litreview/internal/engine"
)

// Loader builds engine Documents from files.
type Loader struct {
	Decoder         Decoder
	Info            InfoReader
	PlaceholderSize int64
	MaxPages        int

	// Log receives one line per degraded document. Nil discards them.
	Log io.Writer
}

// NewLoader returns a Loader using the PDF backends and default limits.
func NewLoader(log io.Writer) *Loader {
	return &Loader{
		Decoder:         TextDecoder{},
		Info:            PDFInfoReader{},
		PlaceholderSize: DefaultPlaceholderSize,
		MaxPages:        DefaultMaxPages,
		Log:             log,
	}
}

// Load probes path, decodes its leading pages, and reads its embedded
// metadata. id names the document in the returned Document and in log
// lines. A decode failure marks the document unavailable; a metadata
// failure only leaves the embedded fields empty.
func (l *Loader) Load(path, id string) (engine.Document, Probe) {
	w := l.Log
	if w == nil {
		w = io.Discard
	}

	base := filepath.Base(path)
	doc := engine.Document{
		ID:           id,
		FilenameStem: strings.TrimSuffix(base, filepath.Ext(base)),
	}

	probe := ProbeFile(path, l.PlaceholderSize)
	if !probe.Available {
		return doc, probe
	}

	maxPages := l.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	pages, err := l.decode(path, maxPages)
	if err != nil {
		fmt.Fprintf(w, "decode failed: %s (%v)\n", id, err)
		probe.Available = false
		return doc, probe
	}
	doc.Pages = pages
	doc.Available = true

	if l.Info != nil {
		info, err := l.info(path)
		if err != nil {
			fmt.Fprintf(w, "no embedded metadata: %s (%v)\n", id, err)
		} else {
			doc.Embedded = info
		}
	}
	return doc, probe
}

// decode calls the Decoder, converting a panic inside a third-party parser
// into an error.
func (l *Loader) decode(path string, maxPages int) (pages [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return l.Decoder.Decode(path, maxPages)
}

func (l *Loader) info(path string) (meta engine.EmbeddedMetadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("metadata panic: %v", r)
		}
	}()
	return l.Info.Info(path)
}

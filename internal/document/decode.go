// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/litreview/internal/heuristic"
)

// DefaultMaxPages is the number of leading pages decoded per document.
const DefaultMaxPages = 3

// Decoder extracts the text lines of the leading pages of a document.
// Different backends can implement this interface.
type Decoder interface {
	// Decode returns up to maxPages pages, each as trimmed non-empty lines.
	Decode(path string, maxPages int) ([][]string, error)
}

// TextDecoder decodes PDF page text with github.com/ledongthuc/pdf.
type TextDecoder struct{}

// Decode implements Decoder. Pages that cannot be decoded are returned as
// empty so page positions are preserved.
func (TextDecoder) Decode(path string, maxPages int) ([][]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	if maxPages > 0 && maxPages < n {
		n = maxPages
	}

	pages := make([][]string, 0, n)
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, heuristic.Lines(text))
	}
	return pages, nil
}

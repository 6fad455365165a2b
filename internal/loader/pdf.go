// Package loader extracts plain text from uploaded cookbook files.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// PDF extracts selectable text from PDF documents.
type PDF struct{}

// NewPDF creates a PDF text extractor.
func NewPDF() *PDF { return &PDF{} }

// Extract returns the text of every page that has any, each followed by a blank line.
// Scanned or image-only documents fail with domain.ErrExtraction.
func (PDF) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrExtraction)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", domain.ErrExtraction, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := pageText(p)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", domain.ErrExtraction, i, err)
		}
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: no selectable text", domain.ErrExtraction)
	}
	return out, nil
}

// pageText guards against the reader panicking on malformed content streams.
func pageText(p pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content: %v", r)
		}
	}()
	return p.GetPlainText(nil)
}

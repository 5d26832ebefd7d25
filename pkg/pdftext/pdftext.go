// Package pdftext extracts plain text from uploaded PDF files.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract returns the concatenated text of every page and the page count.
func Extract(r io.ReaderAt, size int64) (string, int, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf: %w", err)
	}

	pages := reader.NumPage()
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", pages, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String()), pages, nil
}

// ExtractBytes is Extract over an in-memory upload.
func ExtractBytes(data []byte) (string, int, error) {
	return Extract(bytes.NewReader(data), int64(len(data)))
}

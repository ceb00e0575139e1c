package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
)

// PDFReader extracts the plain text of every page of a PDF file.
// Font encodings and ToUnicode maps are honored, so composite fonts decode too.
type PDFReader struct{}

// NewPDFReader creates a reader for .pdf files
func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// Accepts reports whether path has a .pdf extension
func (r *PDFReader) Accepts(path string) bool {
	return hasExtension(path, ".pdf")
}

// Read returns one page per PDF page in page order. Pages without content have empty text.
func (r *PDFReader) Read(ctx context.Context, path string) (doc *model.Document, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// the parser panics on some malformed files
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, helper.NewError("read pdf", fmt.Errorf("malformed pdf: %v", rec))
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, helper.NewError("open pdf", err)
	}
	defer file.Close()

	pageCount := reader.NumPage()
	pages := make([]model.Page, 0, pageCount)
	for pageNumber := 1; pageNumber <= pageCount; pageNumber++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(pageNumber)
		if page.V.IsNull() {
			pages = append(pages, model.Page{Number: pageNumber})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, helper.NewError(fmt.Sprintf("extract text of page %d", pageNumber), err)
		}
		pages = append(pages, model.Page{Number: pageNumber, Text: strings.TrimSpace(text)})
	}

	return &model.Document{
		Source: filepath.Base(path),
		Path:   path,
		Pages:  pages,
	}, nil
}

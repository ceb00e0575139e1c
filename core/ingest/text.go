package ingest

import (
	"context"

	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
)

// TextReader reads plain text files. Form feeds separate pages.
type TextReader struct{}

// NewTextReader creates a reader for .txt files
func NewTextReader() *TextReader {
	return &TextReader{}
}

// Accepts reports whether path has a .txt extension
func (r *TextReader) Accepts(path string) bool {
	return hasExtension(path, ".txt")
}

// Read reads the file and splits it into pages
func (r *TextReader) Read(ctx context.Context, path string) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := model.NewDocumentFromFile(path)
	if err != nil {
		return nil, helper.NewError("read text file", err)
	}
	return doc, nil
}

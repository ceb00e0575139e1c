package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/siherrmann/docqa/model"
)

// PageReader reads a document into already extracted page texts
type PageReader interface {
	// Accepts reports whether the reader handles the file, usually by extension
	Accepts(path string) bool
	Read(ctx context.Context, path string) (*model.Document, error)
}

// MultiReader dispatches to the first reader accepting a file
type MultiReader struct {
	readers []PageReader
}

// NewMultiReader creates a reader trying readers in order
func NewMultiReader(readers ...PageReader) *MultiReader {
	return &MultiReader{readers: readers}
}

// NewDefaultReader reads pdf and plain text files
func NewDefaultReader() *MultiReader {
	return NewMultiReader(NewPDFReader(), NewTextReader())
}

// Accepts reports whether any reader accepts path
func (r *MultiReader) Accepts(path string) bool {
	return r.readerFor(path) != nil
}

// Read reads path with the first accepting reader
func (r *MultiReader) Read(ctx context.Context, path string) (*model.Document, error) {
	reader := r.readerFor(path)
	if reader == nil {
		return nil, &UnsupportedFileError{Path: path}
	}
	return reader.Read(ctx, path)
}

func (r *MultiReader) readerFor(path string) PageReader {
	for _, reader := range r.readers {
		if reader.Accepts(path) {
			return reader
		}
	}
	return nil
}

// UnsupportedFileError is returned for files no reader accepts
type UnsupportedFileError struct {
	Path string
}

func (e *UnsupportedFileError) Error() string {
	return "unsupported file: " + e.Path
}

func hasExtension(path string, extensions ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

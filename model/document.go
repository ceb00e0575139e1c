package model

import (
	"os"
	"path/filepath"
	"strings"
)

// PageSeparator separates pages in plain text documents
const PageSeparator = "\f"

// Page is the already extracted text of one document page
type Page struct {
	Number int    `json:"number"` // 1-based
	Text   string `json:"text"`
}

// Document is a page segmented source document
type Document struct {
	Source string `json:"source"` // file name
	Path   string `json:"path,omitempty"`
	Pages  []Page `json:"pages"`
}

// NewDocumentFromFile reads a plain text file and splits it into pages on form feeds.
// The source defaults to the file name.
func NewDocumentFromFile(filePath string) (*Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return NewDocumentFromText(filepath.Base(filePath), filePath, string(content)), nil
}

// NewDocumentFromText splits text into pages on form feeds
func NewDocumentFromText(source string, path string, text string) *Document {
	parts := strings.Split(text, PageSeparator)
	pages := make([]Page, 0, len(parts))
	for i, part := range parts {
		pages = append(pages, Page{Number: i + 1, Text: part})
	}

	return &Document{
		Source: source,
		Path:   path,
		Pages:  pages,
	}
}

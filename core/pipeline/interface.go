package pipeline

import (
	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
)

// ChunkFunc splits the text of one page into chunks numbered from 0
type ChunkFunc func(text string, source string, page int) ([]model.DocumentChunk, error)

// EmbedFunc generates one embedding per text, in input order.
// Indexing and querying must use the same EmbedFunc.
type EmbedFunc func(texts []string) ([][]float32, error)

// Pipeline combines chunking and embedding functions
type Pipeline struct {
	Chunker  ChunkFunc
	Embedder EmbedFunc
}

// NewPipeline creates a new processing pipeline
func NewPipeline(chunker ChunkFunc, embedder EmbedFunc) *Pipeline {
	return &Pipeline{
		Chunker:  chunker,
		Embedder: embedder,
	}
}

// ProcessDocument chunks every page of the document. Chunk ids are sequential across
// all pages of the document so that (source, chunk_id) stays unique.
// Empty pages produce no chunks.
func (p *Pipeline) ProcessDocument(doc *model.Document) ([]model.DocumentChunk, error) {
	chunks := []model.DocumentChunk{}
	for _, page := range doc.Pages {
		pageChunks, err := p.Chunker(page.Text, doc.Source, page.Number)
		if err != nil {
			return nil, helper.NewError("chunk page", err)
		}

		for _, chunk := range pageChunks {
			chunk.ChunkID = len(chunks)
			chunks = append(chunks, chunk)
		}
	}

	return chunks, nil
}

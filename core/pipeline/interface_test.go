package pipeline

import (
	"errors"
	"testing"

	"github.com/siherrmann/docqa/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock EmbedFunc for testing
func mockEmbedFunc(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = []float32{0.1, 0.2, 0.3, 0.4}
	}
	return embeddings, nil
}

func TestNewPipeline(t *testing.T) {
	t.Run("Create new pipeline", func(t *testing.T) {
		chunker := SlidingWindowChunker(model.DefaultConfig().Chunk)
		pipeline := NewPipeline(chunker, mockEmbedFunc)

		assert.NotNil(t, pipeline)
		assert.NotNil(t, pipeline.Chunker)
		assert.NotNil(t, pipeline.Embedder)
	})
}

func TestProcessDocument(t *testing.T) {
	t.Run("Chunk ids are sequential across pages", func(t *testing.T) {
		pipeline := NewPipeline(SlidingWindowChunker(model.ChunkConfig{Size: 100, Overlap: 20, BreakWindow: 50}), mockEmbedFunc)
		doc := &model.Document{
			Source: "report.pdf",
			Pages: []model.Page{
				{Number: 1, Text: "First page is short."},
				{Number: 2, Text: ""},
				{Number: 3, Text: "Third page has enough text to need more than one window. It keeps going on about fees and returns for a while longer."},
			},
		}

		chunks, err := pipeline.ProcessDocument(doc)

		require.NoError(t, err)
		require.GreaterOrEqual(t, len(chunks), 3)
		for i, chunk := range chunks {
			assert.Equal(t, i, chunk.ChunkID)
			assert.Equal(t, "report.pdf", chunk.Source)
		}
		assert.Equal(t, 1, chunks[0].Page)
		assert.Equal(t, 3, chunks[1].Page, "empty page is skipped")
	})

	t.Run("Document without text", func(t *testing.T) {
		pipeline := NewPipeline(SlidingWindowChunker(model.DefaultConfig().Chunk), mockEmbedFunc)

		chunks, err := pipeline.ProcessDocument(&model.Document{Source: "empty.pdf", Pages: []model.Page{{Number: 1}}})

		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("Chunker error is returned", func(t *testing.T) {
		failing := func(text string, source string, page int) ([]model.DocumentChunk, error) {
			return nil, errors.New("chunk error")
		}
		pipeline := NewPipeline(failing, mockEmbedFunc)

		_, err := pipeline.ProcessDocument(&model.Document{Source: "a.pdf", Pages: []model.Page{{Number: 1, Text: "text"}}})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "chunk error")
	})
}

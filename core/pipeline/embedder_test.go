package pipeline

import (
	"testing"

	"github.com/siherrmann/docqa/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEmbedder(t *testing.T) {
	// Note: DefaultEmbedder uses hugot which requires downloading models
	// These tests may take longer on first run
	config := model.DefaultConfig().Retrieval
	config.EmbedBatchSize = 2

	t.Run("Generate embeddings in batches", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping DefaultEmbedder test in short mode (requires model download)")
		}

		embedder, err := DefaultEmbedder(config)
		require.NoError(t, err)

		texts := []string{
			"The management fee is 2% annually.",
			"Returns are reported every quarter.",
			"This is a test sentence.",
		}
		embeddings, err := embedder(texts)

		require.NoError(t, err)
		require.Len(t, embeddings, 3)
		for _, embedding := range embeddings {
			assert.Equal(t, 384, len(embedding), "all-MiniLM-L6-v2 produces 384-dimensional embeddings")
		}

		hasNonZero := false
		for _, val := range embeddings[0] {
			if val != 0 {
				hasNonZero = true
				break
			}
		}
		assert.True(t, hasNonZero, "Embedding should contain non-zero values")
	})

	t.Run("Empty input", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping DefaultEmbedder test in short mode (requires model download)")
		}

		embedder, err := DefaultEmbedder(config)
		require.NoError(t, err)

		embeddings, err := embedder(nil)

		require.NoError(t, err)
		assert.Empty(t, embeddings)
	})
}

package retrieval

import (
	"hash/fnv"
	"strings"

	"github.com/siherrmann/docqa/model"
)

const testDimensions = 64

// hashEmbed is a deterministic bag of words embedder
func hashEmbed(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding := make([]float32, testDimensions)
		for _, token := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(strings.Trim(token, ".,?!")))
			embedding[h.Sum32()%testDimensions]++
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

func testChunks(source string, texts ...string) []model.DocumentChunk {
	chunks := make([]model.DocumentChunk, len(texts))
	for i, text := range texts {
		chunks[i] = model.DocumentChunk{
			Text:    text,
			Source:  source,
			Page:    1,
			ChunkID: i,
			Metadata: model.ChunkOffsets{
				CharEnd:     len(text),
				ChunkLength: len(text),
			},
		}
	}
	return chunks
}

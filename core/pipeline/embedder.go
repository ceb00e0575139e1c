package pipeline

import (
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
)

// DefaultEmbedder creates an embedder using a real sentence transformer model.
// The default all-MiniLM-L6-v2 model produces 384-dimensional embeddings.
// Texts are embedded in batches of config.EmbedBatchSize.
func DefaultEmbedder(config model.RetrievalConfig) (EmbedFunc, error) {
	// Prepare model (download if needed)
	modelPath, err := helper.PrepareModel(config.ModelDir, config.EmbeddingModel, "")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	pipelineConfig := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "docqa-embedder",
	}
	sentencePipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	batchSize := config.EmbedBatchSize
	if batchSize <= 0 {
		batchSize = 32
	}

	return func(texts []string) ([][]float32, error) {
		embeddings := make([][]float32, 0, len(texts))
		for start := 0; start < len(texts); start += batchSize {
			batch := texts[start:min(start+batchSize, len(texts))]

			result, err := sentencePipeline.RunPipeline(batch)
			if err != nil {
				return nil, fmt.Errorf("failed to generate embeddings: %w", err)
			}
			if len(result.Embeddings) != len(batch) {
				return nil, fmt.Errorf("embedding count mismatch: got %d embeddings for %d texts", len(result.Embeddings), len(batch))
			}

			embeddings = append(embeddings, result.Embeddings...)
		}
		return embeddings, nil
	}, nil
}

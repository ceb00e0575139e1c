package retrieval

import (
	"context"
	"fmt"

	"github.com/siherrmann/docqa/core/pipeline"
	"github.com/siherrmann/docqa/helper"
)

// Scorer scores every chunk of an index snapshot against a query.
// The returned slice is aligned with the snapshot's chunks.
type Scorer interface {
	Score(ctx context.Context, query string, snapshot *Snapshot) ([]float64, error)
}

// LexicalScorer scores with the snapshot's BM25 index
type LexicalScorer struct{}

// NewLexicalScorer creates a new lexical scorer
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// Score returns the raw BM25 scores of the whitespace tokenized query
func (s *LexicalScorer) Score(ctx context.Context, query string, snapshot *Snapshot) ([]float64, error) {
	return snapshot.bm25.Scores(Tokenize(query)), nil
}

// DenseScorer scores by cosine similarity between the query embedding and the chunk embeddings
type DenseScorer struct {
	embed pipeline.EmbedFunc
}

// NewDenseScorer creates a new dense scorer. It must embed with the same function the index was built with.
func NewDenseScorer(embed pipeline.EmbedFunc) *DenseScorer {
	return &DenseScorer{embed: embed}
}

// Score returns the raw cosine similarities
func (s *DenseScorer) Score(ctx context.Context, query string, snapshot *Snapshot) ([]float64, error) {
	embeddings, err := s.embed([]string{query})
	if err != nil {
		return nil, helper.NewError("embed query", err)
	}
	if len(embeddings) != 1 {
		return nil, helper.NewError("embed query", fmt.Errorf("expected 1 embedding, got %d", len(embeddings)))
	}

	queryEmbedding := embeddings[0]
	if len(queryEmbedding) != snapshot.dimensions {
		return nil, helper.NewError("embed query", fmt.Errorf("%w: query has %d, index has %d", ErrDimensionMismatch, len(queryEmbedding), snapshot.dimensions))
	}

	scores := make([]float64, len(snapshot.embeddings))
	for i, embedding := range snapshot.embeddings {
		if i%256 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scores[i] = CosineSimilarity(queryEmbedding, embedding)
	}
	return scores, nil
}

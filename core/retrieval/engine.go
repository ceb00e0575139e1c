package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/siherrmann/docqa/core/pipeline"
	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
	"golang.org/x/sync/errgroup"
)

// ErrDimensionMismatch is returned when embeddings do not match the index dimensionality
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Snapshot is an immutable state of the index. The embedding matrix is aligned
// 1:1 by position with the chunk list.
type Snapshot struct {
	chunks     []model.DocumentChunk
	keys       map[model.ChunkKey]int
	bm25       *BM25
	embeddings [][]float32
	dimensions int
}

// Len returns the number of indexed chunks
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.chunks)
}

// Engine is the hybrid lexical and dense retriever. Index mutations are serialized
// and swap a new snapshot in atomically, so queries see either the old or the new index.
type Engine struct {
	config  model.RetrievalConfig
	embed   pipeline.EmbedFunc
	lexical Scorer
	dense   Scorer
	logger  *slog.Logger

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewEngine creates a new retrieval engine
func NewEngine(config model.RetrievalConfig, embed pipeline.EmbedFunc, logger *slog.Logger) (*Engine, error) {
	if embed == nil {
		return nil, helper.NewError("new engine", errors.New("embedder is required"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		config:  config,
		embed:   embed,
		lexical: NewLexicalScorer(),
		dense:   NewDenseScorer(embed),
		logger:  logger,
	}, nil
}

// Ready reports whether an index with at least one chunk exists
func (e *Engine) Ready() bool {
	return e.current.Load().Len() > 0
}

// Index builds the index over chunks. With appendMode the chunks are merged into the
// current index, dropping every chunk whose (source, chunk_id) already exists.
// Both the lexical index and the embedding matrix are rebuilt over the whole result.
// It returns the number of chunks added. An empty batch is a no-op.
func (e *Engine) Index(ctx context.Context, chunks []model.DocumentChunk, appendMode bool) (int, error) {
	if len(chunks) == 0 {
		e.logger.Warn("No chunks to index")
		return 0, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.current.Load()

	var carried []model.DocumentChunk
	var carriedEmbeddings [][]float32
	keys := map[model.ChunkKey]int{}
	if appendMode && old != nil {
		carried = old.chunks
		carriedEmbeddings = old.embeddings
		for key, i := range old.keys {
			keys[key] = i
		}
	}

	incoming := make([]model.DocumentChunk, 0, len(chunks))
	for _, chunk := range chunks {
		key := chunk.Key()
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = len(carried) + len(incoming)
		incoming = append(incoming, chunk)
	}

	if len(incoming) == 0 {
		e.logger.Info("All chunks already indexed", slog.Int("skipped", len(chunks)))
		return 0, nil
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	texts := make([]string, len(incoming))
	for i, chunk := range incoming {
		texts[i] = chunk.Text
	}
	newEmbeddings, err := e.embed(texts)
	if err != nil {
		return 0, helper.NewError("embed chunks", err)
	}
	if len(newEmbeddings) != len(incoming) {
		return 0, helper.NewError("embed chunks", fmt.Errorf("got %d embeddings for %d chunks", len(newEmbeddings), len(incoming)))
	}

	all := make([]model.DocumentChunk, 0, len(carried)+len(incoming))
	all = append(all, carried...)
	all = append(all, incoming...)

	embeddings := make([][]float32, 0, len(all))
	embeddings = append(embeddings, carriedEmbeddings...)
	embeddings = append(embeddings, newEmbeddings...)

	dimensions := len(embeddings[0])
	for _, embedding := range embeddings {
		if len(embedding) != dimensions || dimensions == 0 {
			return 0, helper.NewError("build index", fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, dimensions, len(embedding)))
		}
	}

	corpus := make([][]string, len(all))
	for i, chunk := range all {
		corpus[i] = Tokenize(chunk.Text)
	}

	snapshot := &Snapshot{
		chunks: all,
		keys:   keys,
		bm25: NewBM25(corpus, BM25Params{
			K1:      e.config.K1,
			B:       e.config.B,
			Epsilon: e.config.Epsilon,
		}),
		embeddings: embeddings,
		dimensions: dimensions,
	}
	e.current.Store(snapshot)

	e.logger.Info(
		"Index built",
		slog.Int("added", len(incoming)),
		slog.Int("skipped", len(chunks)-len(incoming)),
		slog.Int("total_chunks", len(all)),
		slog.Int("embedding_dimensions", dimensions),
	)

	return len(incoming), nil
}

// Retrieve returns at most topK chunks ordered by descending combined score.
// Without an index the result is empty. Scores are only set if withScores is true.
func (e *Engine) Retrieve(ctx context.Context, query string, topK int, withScores bool) ([]model.RetrievalResult, error) {
	snapshot := e.current.Load()
	if snapshot.Len() == 0 || topK <= 0 {
		return []model.RetrievalResult{}, nil
	}

	var lexicalScores, denseScores []float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lexicalScores, err = e.lexical.Score(gctx, query, snapshot)
		return err
	})
	g.Go(func() error {
		var err error
		denseScores, err = e.dense.Score(gctx, query, snapshot)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, helper.NewError("score chunks", err)
	}

	lexicalNorm := Normalize(lexicalScores)
	denseNorm := Normalize(denseScores)
	combined := Fuse(lexicalNorm, denseNorm, e.config.BM25Weight, e.config.DenseWeight)

	indices := TopK(combined, topK)
	results := make([]model.RetrievalResult, len(indices))
	for i, idx := range indices {
		results[i] = model.RetrievalResult{Chunk: snapshot.chunks[idx]}
		if withScores {
			results[i].BM25Score = lexicalNorm[idx]
			results[i].DenseScore = denseNorm[idx]
			results[i].CombinedScore = combined[idx]
		}
	}

	return results, nil
}

// Stats returns statistics of the current index
func (e *Engine) Stats() model.IndexStats {
	snapshot := e.current.Load()
	if snapshot == nil {
		return model.IndexStats{}
	}

	sources := map[string]struct{}{}
	for _, chunk := range snapshot.chunks {
		sources[chunk.Source] = struct{}{}
	}

	return model.IndexStats{
		TotalChunks:         len(snapshot.chunks),
		UniqueSources:       len(sources),
		EmbeddingDimensions: snapshot.dimensions,
		BM25Indexed:         snapshot.bm25 != nil,
	}
}

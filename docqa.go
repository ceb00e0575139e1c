package docqa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/siherrmann/docqa/core/generation"
	"github.com/siherrmann/docqa/core/ingest"
	"github.com/siherrmann/docqa/core/pipeline"
	"github.com/siherrmann/docqa/core/retrieval"
	"github.com/siherrmann/docqa/core/validation"
	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidPath     = errors.New("path is neither a file nor a directory")
	ErrMissingEmbedder = errors.New("embedder is required")
	ErrMissingBackend  = errors.New("generation backend is required")
)

const (
	NoDocumentsAnswer = "No documents loaded. Please load documents first."
	NoResultsAnswer   = "I could not find relevant information in the documents."
)

// DocQA answers questions over a set of documents and reports how far each answer can be trusted
type DocQA struct {
	Config    *model.Config
	Pipeline  *pipeline.Pipeline    // Chunking and embedding
	Engine    *retrieval.Engine     // Hybrid lexical and dense retrieval
	Gateway   *generation.Gateway   // Bounded calls to the generation backend
	Validator *validation.Validator // Trust checks on generated answers
	Reader    ingest.PageReader     // Page text extraction
	// Logging
	log *slog.Logger
}

// NewDocQA creates a new DocQA instance from its external capabilities.
// A nil config uses the defaults, a nil logger logs to stdout at the configured level.
func NewDocQA(config *model.Config, embed pipeline.EmbedFunc, backend generation.Backend, logger *slog.Logger) (*DocQA, error) {
	if config == nil {
		config = model.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("validate config", err)
	}
	if embed == nil {
		return nil, helper.NewError("new docqa", ErrMissingEmbedder)
	}
	if backend == nil {
		return nil, helper.NewError("new docqa", ErrMissingBackend)
	}
	if logger == nil {
		logger = helper.NewLogger(config.LogLevel)
	}

	engine, err := retrieval.NewEngine(config.Retrieval, embed, logger)
	if err != nil {
		return nil, helper.NewError("create retrieval engine", err)
	}

	timeout, err := config.TimeoutDuration()
	if err != nil {
		return nil, helper.NewError("parse generation timeout", err)
	}
	gateway, err := generation.NewGateway(backend, timeout, logger)
	if err != nil {
		return nil, helper.NewError("create generation gateway", err)
	}

	return &DocQA{
		Config:    config,
		Pipeline:  pipeline.NewPipeline(pipeline.SlidingWindowChunker(config.Chunk), embed),
		Engine:    engine,
		Gateway:   gateway,
		Validator: validation.NewValidator(config.Validation, logger),
		Reader:    ingest.NewDefaultReader(),
		log:       logger,
	}, nil
}

// NewDefaultDocQA creates a DocQA with the hugot embedder and the configured generation provider
func NewDefaultDocQA(ctx context.Context, config *model.Config) (*DocQA, error) {
	if config == nil {
		config = model.DefaultConfig()
	}

	embed, err := pipeline.DefaultEmbedder(config.Retrieval)
	if err != nil {
		return nil, helper.NewError("create default embedder", err)
	}

	backend, err := generation.NewBackend(ctx, config.Generation)
	if err != nil {
		return nil, helper.NewError("create generation backend", err)
	}

	return NewDocQA(config, embed, backend, nil)
}

// SetReader replaces the document reader, e.g. to support other file types
func (d *DocQA) SetReader(reader ingest.PageReader) {
	d.Reader = reader
}

// Load reads a single document or every supported document of a directory
// (not recursive) and indexes the resulting chunks. With appendMode chunks
// are added to the current index, otherwise the index is replaced.
// Unreadable files inside a directory are logged and skipped. Loading
// zero chunks leaves the index untouched.
func (d *DocQA) Load(ctx context.Context, path string, appendMode bool) error {
	files, err := d.collectFiles(path)
	if err != nil {
		return err
	}

	loadID := uuid.New()
	d.log.Info("Loading documents", slog.String("load_id", loadID.String()), slog.String("path", path), slog.Int("files", len(files)), slog.Bool("append", appendMode))

	// Files are read in parallel, chunks keep the file order
	chunkSets := make([][]model.DocumentChunk, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			chunks, err := d.readFile(gctx, file)
			if err != nil {
				if len(files) == 1 {
					return err
				}
				d.log.Error("Skipping document", slog.String("file", file), slog.String("error", err.Error()))
				return nil
			}
			chunkSets[i] = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return helper.NewError("load "+path, err)
	}

	chunks := []model.DocumentChunk{}
	for _, set := range chunkSets {
		chunks = append(chunks, set...)
	}
	if len(chunks) == 0 {
		d.log.Warn("No chunks created from documents", slog.String("load_id", loadID.String()), slog.String("path", path))
		return nil
	}

	added, err := d.Engine.Index(ctx, chunks, appendMode)
	if err != nil {
		return helper.NewError("index chunks", err)
	}

	d.log.Info("Loaded documents", slog.String("load_id", loadID.String()), slog.Int("chunks", len(chunks)), slog.Int("added", added))
	return nil
}

func (d *DocQA) collectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, helper.NewError("load "+path, fmt.Errorf("%w: %v", ErrInvalidPath, err))
	}

	if info.Mode().IsRegular() {
		return []string{path}, nil
	}
	if !info.IsDir() {
		return nil, helper.NewError("load "+path, ErrInvalidPath)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, helper.NewError("read directory", err)
	}

	// ReadDir returns entries sorted by name
	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file := filepath.Join(path, entry.Name())
		if d.Reader.Accepts(file) {
			files = append(files, file)
		}
	}
	return files, nil
}

func (d *DocQA) readFile(ctx context.Context, file string) ([]model.DocumentChunk, error) {
	doc, err := d.Reader.Read(ctx, file)
	if err != nil {
		return nil, err
	}

	chunks, err := d.Pipeline.ProcessDocument(doc)
	if err != nil {
		return nil, err
	}

	d.log.Debug("Processed document", slog.String("source", doc.Source), slog.Int("pages", len(doc.Pages)), slog.Int("chunks", len(chunks)))
	return chunks, nil
}

// Query answers a question from the loaded documents. It never fails:
// missing documents, empty retrieval and generation errors produce a
// well formed response. With validate the answer is checked against the sources.
func (d *DocQA) Query(ctx context.Context, question string, validate bool) *model.QueryResponse {
	config := model.DefaultQueryConfig()
	config.Validate = validate
	return d.QueryWithConfig(ctx, question, config)
}

// QueryWithConfig is Query with per query options. A nil config uses DefaultQueryConfig.
// Without ReturnSources the sources are still used for generation and validation
// but left out of the response.
func (d *DocQA) QueryWithConfig(ctx context.Context, question string, config *model.QueryConfig) *model.QueryResponse {
	if config == nil {
		config = model.DefaultQueryConfig()
	}
	topK := config.TopK
	if topK <= 0 {
		topK = d.Config.Retrieval.TopK
	}

	response := &model.QueryResponse{
		ID:       uuid.New(),
		Question: question,
		Sources:  []model.RetrievalResult{},
		Metadata: model.Metadata{},
	}
	response.Metadata["request_id"] = response.ID.String()

	if !d.Engine.Ready() {
		response.Answer = NoDocumentsAnswer
		response.Metadata["error"] = "no_documents_loaded"
		return response
	}

	d.log.Info("Processing query", slog.String("request_id", response.ID.String()), slog.String("question", question))

	results, err := d.Engine.Retrieve(ctx, question, topK, true)
	if err != nil {
		d.log.Error("Retrieval failed", slog.String("request_id", response.ID.String()), slog.String("error", err.Error()))
		response.Metadata["error"] = err.Error()
		results = nil
	}
	if len(results) == 0 {
		response.Answer = NoResultsAnswer
		response.Metadata["retrieval_count"] = 0
		return response
	}

	d.log.Info("Retrieved chunks", slog.Int("count", len(results)), slog.Float64("top_score", results[0].CombinedScore))

	contextChunks := make([]string, len(results))
	for i, result := range results {
		contextChunks[i] = result.Chunk.Text
	}

	generated := d.Gateway.Generate(ctx, question, contextChunks, d.Config.Generation.MaxTokens, d.Config.Generation.Temperature)
	d.log.Info("Generated answer", slog.Int("words", len(strings.Fields(generated.Text))), slog.String("model", generated.Model))

	response.Answer = generated.Text
	if config.ReturnSources {
		response.Sources = results
	}
	response.Metadata["retrieval_count"] = len(results)
	response.Metadata["model"] = generated.Model
	response.Metadata["top_retrieval_score"] = results[0].CombinedScore
	if generated.TokensUsed != nil {
		response.Metadata["tokens_used"] = *generated.TokensUsed
	}
	if generated.Failed() {
		response.Metadata["generation_error"] = generated.Metadata["error"]
	}

	if config.Validate {
		response.Validation = d.Validator.Validate(question, generated.Text, results)
		d.log.Info("Validated answer",
			slog.String("level", string(response.Validation.Level)),
			slog.Float64("confidence", response.Validation.ConfidenceScore),
			slog.Int("warnings", len(response.Validation.Warnings)),
		)
	}

	return response
}

// BatchQuery answers the questions one after another, in order
func (d *DocQA) BatchQuery(ctx context.Context, questions []string, validate bool) []*model.QueryResponse {
	responses := make([]*model.QueryResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, d.Query(ctx, question, validate))
	}
	return responses
}

// Stats returns statistics of the retrieval index
func (d *DocQA) Stats() model.IndexStats {
	return d.Engine.Stats()
}

// PipelineStats returns statistics of the whole pipeline
func (d *DocQA) PipelineStats() model.PipelineStats {
	return model.PipelineStats{
		DocumentsLoaded: d.Engine.Ready(),
		Retriever:       d.Engine.Stats(),
		LLMModel:        d.Gateway.Model(),
		ChunkSize:       d.Config.Chunk.Size,
		TopK:            d.Config.Retrieval.TopK,
	}
}

// Health statuses
const (
	StatusHealthy     = "healthy"
	StatusDegraded    = "degraded"    // Generation backend unreachable, answers degrade
	StatusUnavailable = "unavailable" // Components missing, queries cannot run
)

// Health probes the generation backend. An unavailable backend does not block queries.
func (d *DocQA) Health(ctx context.Context) model.Health {
	health := model.Health{
		Status:        StatusUnavailable,
		PipelineReady: d.Pipeline != nil && d.Engine != nil && d.Gateway != nil && d.Validator != nil && d.Reader != nil,
	}
	if !health.PipelineReady {
		return health
	}

	health.DocumentsLoaded = d.Engine.Ready()
	health.LLMAvailable = d.Gateway.HealthCheck(ctx)
	health.Status = StatusHealthy
	if !health.LLMAvailable {
		health.Status = StatusDegraded
	}
	return health
}

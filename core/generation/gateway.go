package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
)

// Gateway turns a question and its ranked context into an answer. Backend
// failures never escape, they degrade to an answer explaining the failure.
type Gateway struct {
	backend Backend
	timeout time.Duration
	logger  *slog.Logger
}

// NewGateway creates a gateway bounding every backend call by timeout
func NewGateway(backend Backend, timeout time.Duration, logger *slog.Logger) (*Gateway, error) {
	if backend == nil {
		return nil, helper.NewError("new gateway", errors.New("backend is required"))
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		backend: backend,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Model returns the model identifier of the backend
func (g *Gateway) Model() string {
	return g.backend.Model()
}

// Generate answers the question from the context chunks
func (g *Gateway) Generate(ctx context.Context, question string, contextChunks []string, maxTokens int, temperature float64) *model.Generation {
	metadata := model.Metadata{
		"provider":    g.backend.Provider(),
		"temperature": temperature,
		"max_tokens":  maxTokens,
	}

	if len(contextChunks) == 0 {
		metadata["context_chunks"] = 0
		return &model.Generation{
			Text:     NotFoundAnswer,
			Model:    g.backend.Model(),
			Metadata: metadata,
		}
	}

	request := Request{
		Question:    question,
		Context:     contextChunks,
		Prompt:      FormatPrompt(question, contextChunks),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	completion, err := g.complete(ctx, request)
	if err != nil {
		g.logger.Error("Generation failed", slog.String("provider", g.backend.Provider()), slog.String("error", err.Error()))
		return &model.Generation{
			Text:     fmt.Sprintf("Error generating response: %v", err),
			Model:    g.backend.Model(),
			Metadata: model.Metadata{"error": err.Error(), "provider": g.backend.Provider()},
		}
	}

	for key, value := range completion.Metadata {
		metadata[key] = value
	}

	return &model.Generation{
		Text:       ExtractAnswer(completion.Text),
		Model:      g.backend.Model(),
		TokensUsed: completion.TokensUsed,
		Metadata:   metadata,
	}
}

// complete calls the backend and turns a panic into an error
func (g *Gateway) complete(ctx context.Context, request Request) (completion *Completion, err error) {
	defer func() {
		if r := recover(); r != nil {
			completion, err = nil, fmt.Errorf("backend panic: %v", r)
		}
	}()

	completion, err = g.backend.Complete(ctx, request)
	if err == nil && completion == nil {
		err = errors.New("backend returned no completion")
	}
	return completion, err
}

// HealthCheck probes the backend. It is only used for liveness reporting.
func (g *Gateway) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	return g.backend.HealthCheck(ctx)
}

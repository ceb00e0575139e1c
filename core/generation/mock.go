package generation

import (
	"context"
	"fmt"
	"strings"
)

// MockBackend answers from the context without a model. It is meant for demos and tests.
type MockBackend struct {
	model string
}

// NewMockBackend creates a mock backend, an empty model name means "mock-7b"
func NewMockBackend(modelName string) *MockBackend {
	if modelName == "" {
		modelName = "mock-7b"
	}
	return &MockBackend{model: modelName}
}

// Provider returns "mock"
func (b *MockBackend) Provider() string { return "mock" }

// Model returns the configured model name
func (b *MockBackend) Model() string { return b.model }

// Complete returns the first 100 words of the first three context chunks
func (b *MockBackend) Complete(ctx context.Context, request Request) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	answer := NotFoundAnswer
	if len(request.Context) > 0 {
		words := strings.Fields(strings.Join(request.Context[:min(3, len(request.Context))], " "))
		snippet := strings.Join(words[:min(100, len(words))], " ")
		answer = fmt.Sprintf("Based on the fund documents, %s...\n\n(Note: This is a demonstration response. The retrieved context contains %d relevant sections.)", snippet, len(request.Context))
	}

	return &Completion{
		Text:       answer,
		TokensUsed: intPtr(len(strings.Fields(answer))),
		Metadata: map[string]interface{}{
			"context_chunks": len(request.Context),
			"note":           "This is a simulated response demonstrating the pipeline",
		},
	}, nil
}

// HealthCheck always succeeds
func (b *MockBackend) HealthCheck(ctx context.Context) bool {
	return true
}

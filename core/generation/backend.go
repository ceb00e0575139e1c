package generation

import (
	"context"

	"github.com/siherrmann/docqa/model"
)

// Request is one generation call. Remote backends send Prompt, Question and
// Context are kept for backends that work on the raw parts.
type Request struct {
	Question    string
	Context     []string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completion is the raw output of a backend
type Completion struct {
	Text       string
	TokensUsed *int
	Metadata   model.Metadata
}

// Backend is an external text generation capability
type Backend interface {
	// Provider returns the provider name, e.g. "huggingface"
	Provider() string
	// Model returns the model identifier
	Model() string
	Complete(ctx context.Context, request Request) (*Completion, error)
	// HealthCheck is a best effort liveness probe without side effects
	HealthCheck(ctx context.Context) bool
}

func intPtr(i int) *int {
	return &i
}

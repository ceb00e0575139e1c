package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
)

// ErrUnknownProvider is returned for a provider the factory does not know
var ErrUnknownProvider = errors.New("unknown generation provider")

var defaultModels = map[string]string{
	"huggingface": "mistralai/Mistral-7B-Instruct-v0.2",
	"openai":      "gpt-4o-mini",
	"claude":      "claude-3-5-haiku-latest",
	"gemini":      "gemini-2.0-flash",
	"ollama":      "llama3.2",
	"mock":        "mock-7b",
}

// NewBackend creates the backend selected by config.Provider (case insensitive).
// An empty model falls back to the provider's default model.
func NewBackend(ctx context.Context, config model.GenerationConfig) (Backend, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	if config.Model == "" {
		config.Model = defaultModels[provider]
	}

	var backend Backend
	var err error
	switch provider {
	case "huggingface", "openai":
		backend, err = NewOpenAIBackend(provider, config)
	case "claude":
		backend, err = NewClaudeBackend(config)
	case "gemini":
		backend, err = NewGeminiBackend(ctx, config)
	case "ollama":
		backend, err = NewOllamaBackend(config)
	case "mock":
		backend = NewMockBackend(config.Model)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownProvider, config.Provider)
	}
	if err != nil {
		return nil, helper.NewError("new backend", err)
	}

	return backend, nil
}

package generation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/siherrmann/docqa/model"
)

// OllamaBackend generates with a local Ollama server
type OllamaBackend struct {
	model  string
	client *api.Client
}

// NewOllamaBackend connects to config.BaseURL or, if empty, to OLLAMA_HOST
func NewOllamaBackend(config model.GenerationConfig) (*OllamaBackend, error) {
	var client *api.Client
	if config.BaseURL != "" {
		u, err := url.Parse(config.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama url: %w", err)
		}
		client = api.NewClient(u, http.DefaultClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
	}

	return &OllamaBackend{
		model:  config.Model,
		client: client,
	}, nil
}

// Provider returns "ollama"
func (b *OllamaBackend) Provider() string { return "ollama" }

// Model returns the local model name
func (b *OllamaBackend) Model() string { return b.model }

// Complete runs a non streaming chat with the prompt as user message
func (b *OllamaBackend) Complete(ctx context.Context, request Request) (*Completion, error) {
	stream := false
	req := &api.ChatRequest{
		Model: b.model,
		Messages: []api.Message{
			{Role: "user", Content: request.Prompt},
		},
		Options: map[string]interface{}{
			"temperature": request.Temperature,
			"num_predict": request.MaxTokens,
		},
		Stream: &stream,
	}

	var text strings.Builder
	tokens := 0
	err := b.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		text.WriteString(resp.Message.Content)
		if resp.Done {
			tokens = resp.PromptEvalCount + resp.EvalCount
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat failed: %w", err)
	}

	completion := &Completion{Text: text.String()}
	if tokens > 0 {
		completion.TokensUsed = intPtr(tokens)
	}
	return completion, nil
}

// HealthCheck pings the Ollama server
func (b *OllamaBackend) HealthCheck(ctx context.Context) bool {
	return b.client.Heartbeat(ctx) == nil
}

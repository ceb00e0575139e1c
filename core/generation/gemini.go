package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/siherrmann/docqa/model"
	"google.golang.org/genai"
)

// GeminiBackend generates with the Gemini API
type GeminiBackend struct {
	model  string
	client *genai.Client
}

// NewGeminiBackend creates a backend for the Gemini API. An API key is required.
func NewGeminiBackend(ctx context.Context, config model.GenerationConfig) (*GeminiBackend, error) {
	if config.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiBackend{
		model:  config.Model,
		client: client,
	}, nil
}

// Provider returns "gemini"
func (b *GeminiBackend) Provider() string { return "gemini" }

// Model returns the Gemini model name
func (b *GeminiBackend) Model() string { return b.model }

// Complete generates content for the prompt
func (b *GeminiBackend) Complete(ctx context.Context, request Request) (*Completion, error) {
	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(request.Prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(request.Temperature)),
		MaxOutputTokens: int32(request.MaxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, errors.New("no response generated from gemini API")
	}

	completion := &Completion{Text: text}
	if resp.UsageMetadata != nil {
		completion.TokensUsed = intPtr(int(resp.UsageMetadata.TotalTokenCount))
	}
	return completion, nil
}

// HealthCheck looks up the configured model
func (b *GeminiBackend) HealthCheck(ctx context.Context) bool {
	_, err := b.client.Models.Get(ctx, b.model, nil)
	return err == nil
}

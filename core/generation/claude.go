package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/siherrmann/docqa/model"
)

// ClaudeBackend generates with the Anthropic messages API
type ClaudeBackend struct {
	model  string
	client anthropic.Client
}

// NewClaudeBackend creates a backend for the Anthropic Messages API. An API key is required.
func NewClaudeBackend(config model.GenerationConfig, opts ...option.RequestOption) (*ClaudeBackend, error) {
	if config.APIKey == "" {
		return nil, errors.New("claude: api key is required")
	}

	options := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		options = append(options, option.WithBaseURL(config.BaseURL))
	}
	options = append(options, opts...)

	return &ClaudeBackend{
		model:  config.Model,
		client: anthropic.NewClient(options...),
	}, nil
}

// Provider returns "claude"
func (b *ClaudeBackend) Provider() string { return "claude" }

// Model returns the Claude model name
func (b *ClaudeBackend) Model() string { return b.model }

// Complete sends the prompt as a single user message. Tokens used are input plus output tokens.
func (b *ClaudeBackend) Complete(ctx context.Context, request Request) (*Completion, error) {
	resp, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: int64(request.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.Prompt)),
		},
		Temperature: anthropic.Float(request.Temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, errors.New("no response generated from claude API")
	}

	return &Completion{
		Text:       text.String(),
		TokensUsed: intPtr(int(resp.Usage.InputTokens + resp.Usage.OutputTokens)),
		Metadata:   model.Metadata{"stop_reason": string(resp.StopReason)},
	}, nil
}

// HealthCheck sends a minimal message
func (b *ClaudeBackend) HealthCheck(ctx context.Context) bool {
	_, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: 5,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("hi")),
		},
	})
	return err == nil
}

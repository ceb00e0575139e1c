package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/siherrmann/docqa/model"
)

// HuggingFaceRouterURL is the OpenAI compatible endpoint of the HuggingFace inference router
const HuggingFaceRouterURL = "https://router.huggingface.co/v1"

// OpenAIBackend talks to any OpenAI compatible chat completion endpoint,
// by default the HuggingFace inference router.
type OpenAIBackend struct {
	provider string
	model    string
	client   openai.Client
}

// NewOpenAIBackend creates a chat completion backend. The provider name is only used for reporting.
func NewOpenAIBackend(provider string, config model.GenerationConfig, opts ...option.RequestOption) (*OpenAIBackend, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s: api key is required", provider)
	}

	baseURL := config.BaseURL
	if baseURL == "" && provider == "huggingface" {
		baseURL = HuggingFaceRouterURL
	}

	options := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}
	options = append(options, opts...)

	return &OpenAIBackend{
		provider: provider,
		model:    config.Model,
		client:   openai.NewClient(options...),
	}, nil
}

// Provider returns the provider the backend was created for, "huggingface" or "openai"
func (b *OpenAIBackend) Provider() string { return b.provider }

// Model returns the chat model name
func (b *OpenAIBackend) Model() string { return b.model }

// Complete sends the prompt as a chat completion
func (b *OpenAIBackend) Complete(ctx context.Context, request Request) (*Completion, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(request.Prompt),
		},
		MaxTokens:   openai.Int(int64(request.MaxTokens)),
		Temperature: openai.Float(request.Temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in chat completion")
	}

	completion := &Completion{Text: resp.Choices[0].Message.Content}
	if resp.Usage.TotalTokens > 0 {
		completion.TokensUsed = intPtr(int(resp.Usage.TotalTokens))
	}
	return completion, nil
}

// HealthCheck sends a tiny chat completion
func (b *OpenAIBackend) HealthCheck(ctx context.Context) bool {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(b.model),
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage("hi")},
		MaxTokens: openai.Int(5),
	})
	return err == nil && len(resp.Choices) > 0
}

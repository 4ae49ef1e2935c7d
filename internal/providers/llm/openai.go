package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type OpenAIBackend struct {
	client      *openai.Client
	maxTokens   int
	temperature float32
}

func NewOpenAIBackend(config *Config) *OpenAIBackend {
	cfg := openai.DefaultConfig(config.OpenAIAPIKey)
	if config.OpenAIBaseURL != "" {
		cfg.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIBackend{
		client:      openai.NewClientWithConfig(cfg),
		maxTokens:   config.MaxTokens,
		temperature: float32(config.Temperature),
	}
}

func (o *OpenAIBackend) Name() string { return BackendOpenAI }

func (o *OpenAIBackend) Complete(ctx context.Context, model string, prompt Prompt) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: prompt.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.User})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// NewBackends builds the backends that have credentials. A missing key yields
// a nil backend.
func NewBackends(ctx context.Context, config *Config) (gemini, openaiBackend Backend, err error) {
	if config.GeminiAPIKey != "" {
		g, err := NewGeminiBackend(ctx, config)
		if err != nil {
			return nil, nil, err
		}
		gemini = g
	}
	if config.OpenAIAPIKey != "" {
		openaiBackend = NewOpenAIBackend(config)
	}
	return gemini, openaiBackend, nil
}

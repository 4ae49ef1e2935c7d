package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type GeminiBackend struct {
	client      *genai.Client
	maxTokens   int32
	temperature float32
}

func NewGeminiBackend(ctx context.Context, config *Config) (*GeminiBackend, error) {
	cc := &genai.ClientConfig{
		APIKey:  config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.GeminiBaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.GeminiBaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiBackend{
		client:      client,
		maxTokens:   int32(config.MaxTokens),
		temperature: float32(config.Temperature),
	}, nil
}

func (g *GeminiBackend) Name() string { return BackendGemini }

func (g *GeminiBackend) Complete(ctx context.Context, model string, prompt Prompt) (string, error) {
	temp := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: g.maxTokens,
	}
	if prompt.System != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt.User), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate gemini content: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates generated")
	}

	candidate := result.Candidates[0]
	var b strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
	}
	return b.String(), nil
}

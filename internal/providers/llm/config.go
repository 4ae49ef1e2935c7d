// internal/providers/llm/config.go
package llm

import (
	"time"

	"neelakshi-ai/internal/common/config"
)

type Config struct {
	Models      []string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64

	GeminiAPIKey  string
	GeminiBaseURL string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

func LoadConfig(cfg config.LLMConfig) *Config {
	return &Config{
		Models:        cfg.Models,
		Timeout:       cfg.Timeout,
		MaxTokens:     cfg.MaxTokens,
		Temperature:   cfg.Temperature,
		GeminiAPIKey:  cfg.Gemini.APIKey,
		GeminiBaseURL: cfg.Gemini.BaseURL,
		OpenAIAPIKey:  cfg.OpenAI.APIKey,
		OpenAIBaseURL: cfg.OpenAI.BaseURL,
	}
}

// internal/providers/news/config.go
package news

import (
	"time"

	"neelakshi-ai/internal/common/config"
)

type Config struct {
	FeedBaseURL string
	Language    string
	Region      string
	MaxItems    int
	Timeout     time.Duration
	CacheTTL    time.Duration
}

func LoadConfig(cfg config.NewsConfig) *Config {
	return &Config{
		FeedBaseURL: cfg.BaseURL,
		Language:    cfg.Language,
		Region:      cfg.Region,
		MaxItems:    cfg.MaxItems,
		Timeout:     cfg.Timeout,
		CacheTTL:    cfg.CacheTTL,
	}
}

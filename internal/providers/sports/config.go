// internal/providers/sports/config.go
package sports

import (
	"time"

	"neelakshi-ai/internal/common/config"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func LoadConfig(cfg config.SportsConfig) *Config {
	return &Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	}
}

// internal/server/config.go
package server

import (
	"time"

	"neelakshi-ai/internal/common/config"
)

type Config struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	MaxBodyBytes   int64
	ReadyTimeout   time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 64 << 10
	}

	return &Config{
		ServiceName:    cfg.App.Name,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   maxBody,
		ReadyTimeout:   2 * time.Second,
	}
}

// internal/providers/websearch/config.go
package websearch

import (
	"time"

	"neelakshi-ai/internal/common/config"
)

type Config struct {
	Backends   []string
	MaxResults int
	// Timeout bounds one Fetch across all backends; BackendTimeout bounds
	// each backend attempt inside it.
	Timeout        time.Duration
	BackendTimeout time.Duration
	CacheTTL       time.Duration
	AuthoritySites []string
	SportsSites    []string

	GoogleBaseURL  string
	GoogleAPIKey   string
	GoogleEngineID string

	ElasticIndex string

	DuckDuckGoEnabled bool
	DuckDuckGoBaseURL string
}

func LoadConfig(cfg config.SearchConfig) *Config {
	return &Config{
		Backends:          cfg.Backends,
		MaxResults:        cfg.MaxResults,
		Timeout:           cfg.Timeout,
		BackendTimeout:    cfg.BackendTimeout,
		CacheTTL:          cfg.CacheTTL,
		AuthoritySites:    cfg.AuthoritySites,
		SportsSites:       cfg.SportsSites,
		GoogleBaseURL:     cfg.Google.BaseURL,
		GoogleAPIKey:      cfg.Google.APIKey,
		GoogleEngineID:    cfg.Google.EngineID,
		ElasticIndex:      cfg.Elasticsearch.Index,
		DuckDuckGoEnabled: cfg.DuckDuckGo.Enabled,
		DuckDuckGoBaseURL: cfg.DuckDuckGo.BaseURL,
	}
}

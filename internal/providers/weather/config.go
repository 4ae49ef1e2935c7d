// internal/providers/weather/config.go
package weather

import (
	"time"

	"neelakshi-ai/internal/common/config"
)

type Config struct {
	GeocodeURL  string
	ForecastURL string
	Timeout     time.Duration
	CacheTTL    time.Duration
}

func LoadConfig(cfg config.WeatherConfig) *Config {
	return &Config{
		GeocodeURL:  cfg.GeocodeURL,
		ForecastURL: cfg.ForecastURL,
		Timeout:     cfg.Timeout,
		CacheTTL:    cfg.CacheTTL,
	}
}

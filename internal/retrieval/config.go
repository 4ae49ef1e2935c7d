// internal/retrieval/config.go
package retrieval

import (
	"strings"

	"neelakshi-ai/internal/common/config"
)

type Config struct {
	DefaultWeatherPlace string
	KnownPlaces         []string
	AuthoritySites      []string
	SportsSites         []string
}

func LoadConfig(routing config.RoutingConfig, search config.SearchConfig) *Config {
	places := make([]string, 0, len(routing.KnownPlaces))
	for _, p := range routing.KnownPlaces {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			places = append(places, p)
		}
	}

	return &Config{
		DefaultWeatherPlace: routing.DefaultWeatherPlace,
		KnownPlaces:         places,
		AuthoritySites:      search.AuthoritySites,
		SportsSites:         search.SportsSites,
	}
}

package config

import (
	"time"
)

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Providers     ProvidersConfig     `mapstructure:"providers"`
	Routing       RoutingConfig       `mapstructure:"routing"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`

	// EnvFile is the .env file picked up at load time, empty if none.
	EnvFile string `mapstructure:"-"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	MetricsAddress  string        `mapstructure:"metrics_address"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RedisConfig configures the provider result cache. An empty Address disables it.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type ProvidersConfig struct {
	News    NewsConfig    `mapstructure:"news"`
	Weather WeatherConfig `mapstructure:"weather"`
	Sports  SportsConfig  `mapstructure:"sports"`
	Search  SearchConfig  `mapstructure:"search"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

type NewsConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Language string        `mapstructure:"language"`
	Region   string        `mapstructure:"region"`
	MaxItems int           `mapstructure:"max_items"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type WeatherConfig struct {
	GeocodeURL  string        `mapstructure:"geocode_url"`
	ForecastURL string        `mapstructure:"forecast_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type SportsConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SearchConfig struct {
	// Backends is the ordered list of search backends to try.
	Backends       []string      `mapstructure:"backends"`
	MaxResults     int           `mapstructure:"max_results"`
	Timeout        time.Duration `mapstructure:"timeout"`
	BackendTimeout time.Duration `mapstructure:"backend_timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	AuthoritySites []string      `mapstructure:"authority_sites"`
	SportsSites    []string      `mapstructure:"sports_sites"`

	Google struct {
		BaseURL  string `mapstructure:"base_url"`
		APIKey   string `mapstructure:"api_key"`
		EngineID string `mapstructure:"engine_id"`
	} `mapstructure:"google"`

	Elasticsearch struct {
		Addresses []string `mapstructure:"addresses"`
		Username  string   `mapstructure:"username"`
		Password  string   `mapstructure:"password"`
		Index     string   `mapstructure:"index"`
	} `mapstructure:"elasticsearch"`

	DuckDuckGo struct {
		Enabled bool   `mapstructure:"enabled"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"duckduckgo"`
}

type LLMConfig struct {
	// Models is the ordered fallback list; the first non-empty answer wins.
	Models      []string      `mapstructure:"models"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`

	Gemini struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"gemini"`

	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"openai"`
}

type RoutingConfig struct {
	DefaultWeatherPlace string   `mapstructure:"default_weather_place"`
	KnownPlaces         []string `mapstructure:"known_places"`
}

type ObservabilityConfig struct {
	ServiceName      string  `mapstructure:"service_name"`
	TraceSampleRatio float64 `mapstructure:"trace_sample_ratio"`
}

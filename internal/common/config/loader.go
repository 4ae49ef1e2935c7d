package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var knownSearchBackends = map[string]bool{
	"google":        true,
	"elasticsearch": true,
	"duckduckgo":    true,
}

// Load reads configs/config.yaml, merges config.<env>.yaml, applies .env and
// environment overrides, then fills defaults and validates.
func Load() (*Config, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	cfg.App.EnvFile = envFile
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}
	return cfg, nil
}

// LoadFromFile reads a single YAML file instead of searching the config paths.
func LoadFromFile(path string) (*Config, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	cfg.App.EnvFile = envFile
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			v.Set(key, os.ExpandEnv(strVal))
		}
	}
}

// overrideEmptyConfig fills credentials from the conventional environment
// variable names used by the hosted deployment.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.Providers.LLM.Gemini.APIKey, "GEMINI_API_KEY")
	setIfEmpty(&cfg.Providers.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	setIfEmpty(&cfg.Providers.Sports.APIKey, "CRICAPI_KEY")
	setIfEmpty(&cfg.Providers.Search.Google.APIKey, "WEB_SEARCH_API_KEY")
	setIfEmpty(&cfg.Providers.Search.Google.EngineID, "WEB_SEARCH_ENGINE_ID")
	setIfEmpty(&cfg.Redis.Address, "REDIS_ADDR")

	if cfg.Server.Address == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Server.Address = ":" + port
		}
	}
}

func setIfEmpty(dst *string, envKey string) {
	if *dst != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*dst = val
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "neelakshi-ai"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":10000"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 90 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 64 << 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	news := &cfg.Providers.News
	if news.BaseURL == "" {
		news.BaseURL = "https://news.google.com/rss/search"
	}
	if news.Language == "" {
		news.Language = "hi"
	}
	if news.Region == "" {
		news.Region = "IN"
	}
	if news.MaxItems == 0 {
		news.MaxItems = 5
	}
	if news.Timeout == 0 {
		news.Timeout = 8 * time.Second
	}
	if news.CacheTTL == 0 {
		news.CacheTTL = 5 * time.Minute
	}

	weather := &cfg.Providers.Weather
	if weather.GeocodeURL == "" {
		weather.GeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	if weather.ForecastURL == "" {
		weather.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	if weather.Timeout == 0 {
		weather.Timeout = 8 * time.Second
	}
	if weather.CacheTTL == 0 {
		weather.CacheTTL = 10 * time.Minute
	}

	sports := &cfg.Providers.Sports
	if sports.BaseURL == "" {
		sports.BaseURL = "https://api.cricapi.com/v1/currentMatches"
	}
	if sports.Timeout == 0 {
		sports.Timeout = 8 * time.Second
	}

	search := &cfg.Providers.Search
	if len(search.Backends) == 0 {
		search.Backends = []string{"google", "elasticsearch", "duckduckgo"}
	}
	if search.MaxResults == 0 {
		search.MaxResults = 5
	}
	if search.Timeout == 0 {
		search.Timeout = 8 * time.Second
	}
	if search.BackendTimeout == 0 || search.BackendTimeout > search.Timeout {
		search.BackendTimeout = search.Timeout / 2
	}
	if search.CacheTTL == 0 {
		search.CacheTTL = 15 * time.Minute
	}
	if len(search.AuthoritySites) == 0 {
		search.AuthoritySites = []string{"gov.in", "nic.in", "wikipedia.org"}
	}
	if len(search.SportsSites) == 0 {
		search.SportsSites = []string{"espncricinfo.com", "cricbuzz.com"}
	}
	if search.Google.BaseURL == "" {
		search.Google.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if search.Elasticsearch.Index == "" {
		search.Elasticsearch.Index = "knowledge"
	}
	if search.DuckDuckGo.BaseURL == "" {
		search.DuckDuckGo.BaseURL = "https://html.duckduckgo.com/html/"
	}

	llm := &cfg.Providers.LLM
	if len(llm.Models) == 0 {
		llm.Models = []string{"gemini-2.5-flash", "gemini-1.5-flash", "gpt-4o-mini"}
	}
	if llm.Timeout == 0 {
		llm.Timeout = 20 * time.Second
	}
	if llm.MaxTokens == 0 {
		llm.MaxTokens = 800
	}
	if llm.Temperature == 0 {
		llm.Temperature = 0.7
	}

	if cfg.Routing.DefaultWeatherPlace == "" {
		cfg.Routing.DefaultWeatherPlace = "Jaipur"
	}
	if len(cfg.Routing.KnownPlaces) == 0 {
		cfg.Routing.KnownPlaces = []string{"jaipur", "new delhi", "delhi", "udaipur", "kota", "rajasthan", "mumbai"}
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}

	for _, b := range cfg.Providers.Search.Backends {
		if !knownSearchBackends[b] {
			return fmt.Errorf("providers.search.backends: unknown backend %q", b)
		}
	}

	if len(cfg.Providers.LLM.Models) == 0 {
		return fmt.Errorf("providers.llm.models must list at least one model")
	}
	if cfg.Providers.LLM.Temperature < 0 || cfg.Providers.LLM.Temperature > 2 {
		return fmt.Errorf("providers.llm.temperature must be within [0, 2]")
	}

	if r := cfg.Observability.TraceSampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("observability.trace_sample_ratio must be within [0, 1]")
	}

	return nil
}

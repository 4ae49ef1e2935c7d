// Package app builds the assistant pipeline and its backing clients from
// configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"neelakshi-ai/internal/assistant"
	"neelakshi-ai/internal/common/config"
	"neelakshi-ai/internal/common/database"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/common/observability"
	"neelakshi-ai/internal/composer"
	"neelakshi-ai/internal/intent"
	"neelakshi-ai/internal/providers/llm"
	"neelakshi-ai/internal/providers/news"
	"neelakshi-ai/internal/providers/sports"
	"neelakshi-ai/internal/providers/weather"
	"neelakshi-ai/internal/providers/websearch"
	"neelakshi-ai/internal/retrieval"
	"neelakshi-ai/internal/server"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// App holds everything built from config for one process.
type App struct {
	Assistant *assistant.Service
	Checks    map[string]server.ReadinessCheck

	cfg     *config.Config
	log     logger.Logger
	redis   *database.RedisClient
	es      *database.ElasticsearchClient
	obs     *observability.Observability
	tracing *observability.Tracing
}

type Options struct {
	// ConnectFor bounds how long Redis and Elasticsearch are retried before
	// the app carries on without them. Zero means 30 seconds.
	ConnectFor time.Duration
	// Registerer receives the otel metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// New connects optional backing services and builds the pipeline. Only a
// missing language model is fatal.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    log,
		Checks: map[string]server.ReadinessCheck{},
	}
	connectFor := opts.ConnectFor
	if connectFor <= 0 {
		connectFor = 30 * time.Second
	}

	a.obs = observability.New(cfg.Observability.ServiceName, opts.Registerer)

	var processors []sdktrace.SpanProcessor
	if cfg.Logging.Level == "debug" {
		processors = append(processors, observability.NewLogSpanProcessor(log))
	}
	a.tracing = observability.NewTracing(cfg.Observability.TraceSampleRatio, processors...)

	if cfg.Redis.Enabled() {
		rdb, err := database.NewRedis(cfg.Redis)
		if err == nil {
			err = connectWithBackoff(ctx, "redis", connectFor, log, rdb.Ping)
		}
		if err != nil {
			log.Warn("result cache disabled", map[string]interface{}{"error": err.Error()})
			if rdb != nil {
				_ = rdb.Close()
			}
		} else {
			a.redis = rdb
			a.Checks["redis"] = rdb.Ping
			log.Info("redis connected", map[string]interface{}{"address": cfg.Redis.Address})
		}
	}
	cache := database.NewResultCache(a.redis, log)

	search := cfg.Providers.Search
	if len(search.Elasticsearch.Addresses) > 0 {
		es, err := database.NewElasticsearch(database.ElasticsearchConfig{
			Addresses: search.Elasticsearch.Addresses,
			Username:  search.Elasticsearch.Username,
			Password:  search.Elasticsearch.Password,
		})
		if err == nil {
			err = connectWithBackoff(ctx, "elasticsearch", connectFor, log, es.Ping)
		}
		if err != nil {
			log.Warn("elasticsearch search backend disabled", map[string]interface{}{"error": err.Error()})
		} else {
			a.es = es
			a.Checks["elasticsearch"] = es.Ping
			log.Info("elasticsearch connected", map[string]interface{}{"addresses": search.Elasticsearch.Addresses})
		}
	}

	llmCfg := llm.LoadConfig(cfg.Providers.LLM)
	gemini, openai, err := llm.NewBackends(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("language model backends: %w", err)
	}
	model, err := llm.NewAdapter(llmCfg, gemini, openai, log)
	if err != nil {
		return nil, err
	}

	searchCfg := websearch.LoadConfig(search)
	searchAdapter := websearch.NewAdapter(searchCfg, websearch.NewBackends(searchCfg, a.es), cache, log)
	sportsAdapter := sports.NewAdapter(sports.LoadConfig(cfg.Providers.Sports), log)

	if !searchAdapter.Configured() {
		log.Warn("no web search backend configured", nil)
	}
	if !sportsAdapter.Configured() {
		log.Warn("live sports provider unconfigured, sports questions fall back to web search", nil)
	}

	orchestrator := retrieval.New(
		retrieval.LoadConfig(cfg.Routing, search),
		retrieval.Providers{
			News:    news.NewAdapter(news.LoadConfig(cfg.Providers.News), cache, log),
			Weather: weather.NewAdapter(weather.LoadConfig(cfg.Providers.Weather), cache, log),
			Sports:  sportsAdapter,
			Search:  searchAdapter,
		},
		a.obs,
		log,
	)

	a.Assistant = assistant.NewService(
		intent.New(intent.DefaultRules...),
		orchestrator,
		composer.New(model, log),
		a.obs,
		log,
	)

	log.Info("pipeline ready", map[string]interface{}{
		"models":         model.Models(),
		"cacheEnabled":   a.redis != nil,
		"searchBackends": searchCfg.Backends,
	})
	return a, nil
}

func connectWithBackoff(ctx context.Context, name string, maxElapsed time.Duration, log logger.Logger, ping func(ctx context.Context) error) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 500 * time.Millisecond
	expo.MaxInterval = 5 * time.Second
	expo.MaxElapsedTime = maxElapsed

	op := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return ping(pingCtx)
	}
	notify := func(err error, next time.Duration) {
		log.Warn(name+" not reachable, retrying", map[string]interface{}{
			"error":       err.Error(),
			"nextRetryIn": next.String(),
		})
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(expo, ctx), notify); err != nil {
		return fmt.Errorf("%s connection failed: %w", name, err)
	}
	return nil
}

func (a *App) Close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("error closing redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if err := a.tracing.Shutdown(ctx); err != nil {
		a.log.Error("error shutting down tracing", map[string]interface{}{"error": err.Error()})
	}
	a.obs.Shutdown()
}

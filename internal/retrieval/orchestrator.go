// Package retrieval walks the per-intent fallback chain of provider adapters
// and gathers the first successful result.
package retrieval

import (
	"context"
	"strings"
	"time"

	apperrors "neelakshi-ai/internal/common/errors"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/common/metrics"
	"neelakshi-ai/internal/common/observability"
	"neelakshi-ai/internal/models"
	"neelakshi-ai/internal/providers/websearch"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type NewsFetcher interface {
	Fetch(ctx context.Context, locality string) models.ProviderResult
}

type WeatherFetcher interface {
	Fetch(ctx context.Context, place string) models.ProviderResult
}

type SportsFetcher interface {
	Fetch(ctx context.Context, filter string) models.ProviderResult
}

type SearchFetcher interface {
	Fetch(ctx context.Context, text string, ref websearch.Refinement) models.ProviderResult
}

// Providers holds the adapters a chain may call. A nil adapter makes its
// steps fail as unconfigured.
type Providers struct {
	News    NewsFetcher
	Weather WeatherFetcher
	Sports  SportsFetcher
	Search  SearchFetcher
}

const (
	StepNews            = "news"
	StepWeather         = "weather"
	StepLiveSports      = "livesports"
	StepSportsSearch    = "sports-search"
	StepAuthorityLookup = "authority-lookup"
	StepGeneralSearch   = "general-search"
)

type step struct {
	name     string
	provider string
	run      func(ctx context.Context, u models.Utterance) models.ProviderResult
}

type Orchestrator struct {
	config    *Config
	providers Providers
	chains    map[models.IntentCategory][]step
	obs       *observability.Observability
	logger    logger.Logger
}

func New(config *Config, providers Providers, obs *observability.Observability, log logger.Logger) *Orchestrator {
	o := &Orchestrator{
		config:    config,
		providers: providers,
		obs:       obs,
		logger:    log.With(map[string]interface{}{"component": "retrieval"}),
	}

	authority := websearch.AuthorityRefinement(config.AuthoritySites)
	sports := websearch.SportsRefinement(config.SportsSites)

	o.chains = map[models.IntentCategory][]step{
		models.IntentNews:             {o.newsStep()},
		models.IntentWeather:          {o.weatherStep()},
		models.IntentLiveSports:       {o.liveSportsStep(), o.searchStep(StepSportsSearch, sports)},
		models.IntentAuthorityLookup:  {o.searchStep(StepAuthorityLookup, authority)},
		models.IntentGeneralSearch:    {o.searchStep(StepGeneralSearch, websearch.Unrefined)},
		models.IntentDirectCompletion: nil,
	}
	return o
}

// Chain lists the step names tried for intent, in order.
func (o *Orchestrator) Chain(intent models.IntentCategory) []string {
	var names []string
	for _, s := range o.chains[intent] {
		names = append(names, s.name)
	}
	return names
}

// Retrieve runs the chain for intent and stops at the first success. Failures
// of any kind move on to the next step; an exhausted chain yields an empty
// context.
func (o *Orchestrator) Retrieve(ctx context.Context, intent models.IntentCategory, u models.Utterance) models.RetrievalContext {
	rc := models.RetrievalContext{Intent: intent}
	tracer := otel.Tracer(observability.TracerName)

	for _, s := range o.chains[intent] {
		stepCtx, span := tracer.Start(ctx, "retrieval."+s.name)
		start := time.Now()
		result := s.run(stepCtx, u)
		elapsed := time.Since(start)

		outcome := result.Outcome()
		span.SetAttributes(
			attribute.String("provider", s.provider),
			attribute.String("outcome", outcome),
		)
		span.End()

		rc.Attempts = append(rc.Attempts, models.StepAttempt{
			Step:     s.name,
			Provider: s.provider,
			Outcome:  outcome,
			Duration: elapsed,
		})
		metrics.ProviderCalls.WithLabelValues(s.provider, outcome).Inc()
		o.obs.RecordProviderCall(ctx, s.provider, outcome, elapsed)

		fields := map[string]interface{}{
			"intent":     string(intent),
			"step":       s.name,
			"outcome":    outcome,
			"durationMs": elapsed.Milliseconds(),
		}
		if !result.OK() {
			if result.Err != nil {
				fields["error"] = result.Err.Error()
			}
			o.logger.Info("retrieval step failed", fields)
			continue
		}

		o.logger.Info("retrieval step succeeded", fields)
		rc.Results = append(rc.Results, result)
		return rc
	}

	if len(o.chains[intent]) > 0 {
		o.logger.Info("retrieval chain exhausted", map[string]interface{}{
			"intent":   string(intent),
			"attempts": len(rc.Attempts),
		})
	}
	return rc
}

func (o *Orchestrator) newsStep() step {
	return step{
		name:     StepNews,
		provider: "news",
		run: func(ctx context.Context, u models.Utterance) models.ProviderResult {
			if o.providers.News == nil {
				return unconfigured("news")
			}
			return o.providers.News.Fetch(ctx, o.config.Locality(u.Normalized))
		},
	}
}

func (o *Orchestrator) weatherStep() step {
	return step{
		name:     StepWeather,
		provider: "weather",
		run: func(ctx context.Context, u models.Utterance) models.ProviderResult {
			if o.providers.Weather == nil {
				return unconfigured("weather")
			}
			return o.providers.Weather.Fetch(ctx, o.config.WeatherPlace(u.Normalized))
		},
	}
}

func (o *Orchestrator) liveSportsStep() step {
	return step{
		name:     StepLiveSports,
		provider: "livesports",
		run: func(ctx context.Context, u models.Utterance) models.ProviderResult {
			if o.providers.Sports == nil {
				return unconfigured("livesports")
			}
			return o.providers.Sports.Fetch(ctx, u.Normalized)
		},
	}
}

func (o *Orchestrator) searchStep(name string, ref websearch.Refinement) step {
	return step{
		name:     name,
		provider: websearch.ProviderName,
		run: func(ctx context.Context, u models.Utterance) models.ProviderResult {
			if o.providers.Search == nil {
				return unconfigured(websearch.ProviderName)
			}
			return o.providers.Search.Fetch(ctx, strings.TrimSpace(u.Raw), ref)
		},
	}
}

func unconfigured(provider string) models.ProviderResult {
	return models.Failure(provider, apperrors.NewUnconfiguredError(provider, "adapter"))
}

// internal/providers/websearch/adapter.go
package websearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"neelakshi-ai/internal/common/database"
	apperrors "neelakshi-ai/internal/common/errors"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/models"
)

const ProviderName = "websearch"

// Query is what a backend receives: the user text and the refinement to
// apply in whatever way the backend supports.
type Query struct {
	Text       string
	Refinement Refinement
}

type Backend interface {
	Name() string
	Configured() bool
	Search(ctx context.Context, q Query, max int) ([]models.SearchResult, error)
}

// Adapter serves AuthorityLookup and GeneralSearch. It walks its backends in
// order and returns the first non-empty result set.
type Adapter struct {
	config   *Config
	backends []Backend
	cache    *database.ResultCache
	logger   logger.Logger
}

func NewAdapter(config *Config, backends []Backend, cache *database.ResultCache, log logger.Logger) *Adapter {
	return &Adapter{
		config:   config,
		backends: backends,
		cache:    cache,
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
		}),
	}
}

// NewBackends builds the backends named in config.Backends, in that order.
// es may be nil when no Elasticsearch cluster is configured.
func NewBackends(config *Config, es *database.ElasticsearchClient) []Backend {
	var out []Backend
	for _, name := range config.Backends {
		switch name {
		case "google":
			out = append(out, NewGoogleBackend(config))
		case "elasticsearch":
			out = append(out, NewElasticBackend(es, config.ElasticIndex))
		case "duckduckgo":
			out = append(out, NewDuckDuckGoBackend(config))
		}
	}
	return out
}

func (a *Adapter) Name() string { return ProviderName }

func (a *Adapter) Configured() bool {
	for _, b := range a.backends {
		if b.Configured() {
			return true
		}
	}
	return false
}

func (a *Adapter) Fetch(ctx context.Context, text string, ref Refinement) models.ProviderResult {
	if !a.Configured() {
		return models.Failure(ProviderName, apperrors.NewUnconfiguredError(ProviderName, "search backend credentials"))
	}

	q := Query{Text: strings.TrimSpace(text), Refinement: ref}
	cacheKey := ref.Apply(q.Text)

	var cached models.SearchResults
	if a.cache.Lookup(ctx, ProviderName, cacheKey, &cached) && !cached.Empty() {
		return models.Success(ProviderName, &cached)
	}

	results, err := a.execute(ctx, q)
	if err != nil {
		a.logger.Warn("web search failed", map[string]interface{}{
			"query":      cacheKey,
			"refinement": ref.Name,
			"error":      err.Error(),
		})
		return models.Failure(ProviderName, err)
	}

	a.cache.Store(ctx, ProviderName, cacheKey, results, a.config.CacheTTL)
	a.logger.Info("web search completed", map[string]interface{}{
		"query":       cacheKey,
		"refinement":  ref.Name,
		"backend":     results.Backend,
		"resultCount": len(results.Results),
	})
	return models.Success(ProviderName, results)
}

func (a *Adapter) execute(ctx context.Context, q Query) (*models.SearchResults, error) {
	var (
		sawEmpty    bool
		upstreamErr error
		timeoutErr  error
	)

	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	for _, b := range a.backends {
		if !b.Configured() {
			continue
		}
		if err := ctx.Err(); err != nil {
			timeoutErr = apperrors.NewTimeoutError(ProviderName, fmt.Errorf("budget spent before %s: %w", b.Name(), err))
			break
		}

		callCtx, cancel := context.WithTimeout(ctx, a.backendTimeout())
		items, err := b.Search(callCtx, q, a.config.MaxResults)
		timedOut := callCtx.Err() == context.DeadlineExceeded
		cancel()

		if err != nil {
			if timedOut || apperrors.IsTimeout(err) {
				timeoutErr = apperrors.NewTimeoutError(ProviderName, fmt.Errorf("%s: %w", b.Name(), err))
			} else {
				upstreamErr = apperrors.NewUpstreamError(ProviderName, fmt.Errorf("%s: %w", b.Name(), err))
			}
			a.logger.Debug("search backend failed", map[string]interface{}{
				"backend": b.Name(),
				"error":   err.Error(),
			})
			continue
		}

		items = dedupe(items, a.config.MaxResults)
		if len(items) == 0 {
			sawEmpty = true
			continue
		}

		return &models.SearchResults{Backend: b.Name(), Results: items}, nil
	}

	// a backend that answered with nothing outranks transport errors
	switch {
	case sawEmpty:
		return nil, apperrors.NewNotFoundError(ProviderName, fmt.Sprintf("no results for %q", q.Refinement.Apply(q.Text)))
	case upstreamErr != nil:
		return nil, upstreamErr
	case timeoutErr != nil:
		return nil, timeoutErr
	default:
		return nil, apperrors.NewNotFoundError(ProviderName, "no search backend answered")
	}
}

func (a *Adapter) backendTimeout() time.Duration {
	if a.config.BackendTimeout <= 0 || (a.config.Timeout > 0 && a.config.BackendTimeout > a.config.Timeout) {
		return a.config.Timeout
	}
	return a.config.BackendTimeout
}

func dedupe(items []models.SearchResult, max int) []models.SearchResult {
	seen := make(map[string]bool)
	out := make([]models.SearchResult, 0, len(items))

	for _, it := range items {
		it.Title = strings.TrimSpace(it.Title)
		it.Snippet = strings.TrimSpace(it.Snippet)
		if it.Title == "" && it.Snippet == "" {
			continue
		}
		key := strings.TrimRight(it.Link, "/")
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, it)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

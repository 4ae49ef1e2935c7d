// internal/providers/news/adapter.go
package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"neelakshi-ai/internal/common/database"
	apperrors "neelakshi-ai/internal/common/errors"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/models"

	"github.com/mmcdole/gofeed"
)

const (
	ProviderName = "news"
	defaultQuery = "India news"
	userAgent    = "neelakshi-ai/1.0"
)

type Adapter struct {
	config *Config
	parser *gofeed.Parser
	cache  *database.ResultCache
	logger logger.Logger
}

func NewAdapter(config *Config, cache *database.ResultCache, log logger.Logger) *Adapter {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: config.Timeout}
	parser.UserAgent = userAgent

	return &Adapter{
		config: config,
		parser: parser,
		cache:  cache,
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
		}),
	}
}

func (a *Adapter) Name() string { return ProviderName }

// Fetch returns up to MaxItems headlines for locality, most recent first. An
// empty locality means national headlines.
func (a *Adapter) Fetch(ctx context.Context, locality string) models.ProviderResult {
	query := Query(locality)

	var cached models.Headlines
	if a.cache.Lookup(ctx, ProviderName, query, &cached) && !cached.Empty() {
		return models.Success(ProviderName, &cached)
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	headlines, err := a.execute(ctx, query)
	if err != nil {
		a.logger.Warn("news fetch failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return models.Failure(ProviderName, err)
	}

	a.cache.Store(ctx, ProviderName, query, headlines, a.config.CacheTTL)
	a.logger.Info("news fetched", map[string]interface{}{
		"query": query,
		"count": len(headlines.Items),
	})
	return models.Success(ProviderName, headlines)
}

// Query is the search phrase sent to the feed for a locality.
func Query(locality string) string {
	locality = strings.TrimSpace(locality)
	if locality == "" {
		return defaultQuery
	}
	return locality + " news"
}

func (a *Adapter) execute(ctx context.Context, query string) (*models.Headlines, error) {
	feed, err := a.parser.ParseURLWithContext(a.buildFeedURL(query), ctx)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || apperrors.IsTimeout(err) {
			return nil, apperrors.NewTimeoutError(ProviderName, err)
		}
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			return nil, apperrors.NewUpstreamError(ProviderName, err)
		}
		// unreachable feed or bad status: nothing usable to report
		return nil, apperrors.NewNotFoundError(ProviderName, err.Error())
	}

	items := latestTitles(feed.Items, a.config.MaxItems)
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError(ProviderName, fmt.Sprintf("empty feed for %q", query))
	}

	return &models.Headlines{Query: query, Items: items}, nil
}

func (a *Adapter) buildFeedURL(query string) string {
	params := url.Values{}
	params.Add("q", query)
	params.Add("hl", a.config.Language)
	params.Add("gl", a.config.Region)
	params.Add("ceid", a.config.Region+":"+a.config.Language)
	return a.config.FeedBaseURL + "?" + params.Encode()
}

// latestTitles orders items newest first, keeping feed order for ties and
// undated items last, and returns at most max non-empty titles.
func latestTitles(items []*gofeed.Item, max int) []string {
	sorted := make([]*gofeed.Item, 0, len(items))
	for _, it := range items {
		if it != nil && strings.TrimSpace(it.Title) != "" {
			sorted = append(sorted, it)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return published(sorted[i]).After(published(sorted[j]))
	})

	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}

	titles := make([]string, len(sorted))
	for i, it := range sorted {
		titles[i] = strings.TrimSpace(it.Title)
	}
	return titles
}

func published(it *gofeed.Item) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return time.Time{}
}

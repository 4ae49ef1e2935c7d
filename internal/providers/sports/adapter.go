// internal/providers/sports/adapter.go
package sports

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	apperrors "neelakshi-ai/internal/common/errors"
	httpclient "neelakshi-ai/internal/common/http"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/models"
)

const ProviderName = "livesports"

var filterStopWords = map[string]bool{
	"the": true, "and": true, "live": true, "score": true, "match": true,
	"cricket": true, "today": true, "aaj": true, "kya": true, "hai": true,
}

// Adapter reports cricket matches that are currently in play. Results are
// never cached.
type Adapter struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewAdapter(config *Config, log logger.Logger) *Adapter {
	return &Adapter{
		config: config,
		client: httpclient.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
		}),
	}
}

func (a *Adapter) Name() string { return ProviderName }

func (a *Adapter) Configured() bool {
	return a.config.APIKey != "" && a.config.BaseURL != ""
}

// Fetch returns live matches. filter, when set, keeps only matches whose name
// or teams mention it; if nothing survives the filter all live matches are
// returned.
func (a *Adapter) Fetch(ctx context.Context, filter string) models.ProviderResult {
	if !a.Configured() {
		return models.Failure(ProviderName, apperrors.NewUnconfiguredError(ProviderName, "sports api key"))
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	summaries, err := a.execute(ctx, filter)
	if err != nil {
		a.logger.Warn("live sports fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return models.Failure(ProviderName, err)
	}

	a.logger.Info("live matches fetched", map[string]interface{}{
		"count": len(summaries.Matches),
	})
	return models.Success(ProviderName, summaries)
}

func (a *Adapter) execute(ctx context.Context, filter string) (*models.MatchSummaries, error) {
	params := url.Values{}
	params.Add("apikey", a.config.APIKey)
	params.Add("offset", "0")

	var resp currentMatchesResponse
	if err := a.client.GetJSON(ctx, a.config.BaseURL+"?"+params.Encode(), &resp); err != nil {
		if ctx.Err() == context.DeadlineExceeded || apperrors.IsTimeout(err) {
			return nil, apperrors.NewTimeoutError(ProviderName, err)
		}
		return nil, apperrors.NewUpstreamError(ProviderName, err)
	}

	if !strings.EqualFold(resp.Status, "success") {
		return nil, apperrors.NewUpstreamError(ProviderName, fmt.Errorf("status %q: %s", resp.Status, resp.Reason))
	}

	var live []models.MatchSummary
	for _, m := range resp.Data {
		if m.MatchStarted && !m.MatchEnded {
			live = append(live, toSummary(m))
		}
	}

	if len(live) == 0 {
		return nil, apperrors.NewNotFoundError(ProviderName, "no live matches")
	}

	if filtered := filterMatches(live, filter); len(filtered) > 0 {
		live = filtered
	}

	return &models.MatchSummaries{Matches: live}, nil
}

func toSummary(m match) models.MatchSummary {
	participants := m.Teams
	if len(participants) == 0 && m.Name != "" {
		participants = []string{m.Name}
	}

	scores := make([]string, 0, len(m.Score))
	for _, s := range m.Score {
		scores = append(scores, fmt.Sprintf("%s %d/%d (%s ov)", s.Inning, s.Runs, s.Wickets,
			strconv.FormatFloat(s.Overs, 'f', -1, 64)))
	}

	return models.MatchSummary{
		Participants: participants,
		Venue:        m.Venue,
		Status:       m.Status,
		Score:        strings.Join(scores, "; "),
	}
}

func filterMatches(matches []models.MatchSummary, filter string) []models.MatchSummary {
	words := strings.Fields(strings.ToLower(filter))
	if len(words) == 0 {
		return nil
	}

	var out []models.MatchSummary
	for _, m := range matches {
		haystack := strings.ToLower(strings.Join(m.Participants, " "))
		for _, w := range words {
			if len(w) >= 3 && !filterStopWords[w] && strings.Contains(haystack, w) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

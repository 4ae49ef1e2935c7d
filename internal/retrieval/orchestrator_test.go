package retrieval

import (
	"context"
	"testing"

	apperrors "neelakshi-ai/internal/common/errors"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/common/observability"
	"neelakshi-ai/internal/langdetect"
	"neelakshi-ai/internal/models"
	"neelakshi-ai/internal/providers/websearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeFetcher struct {
	result models.ProviderResult
	args   []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, arg string) models.ProviderResult {
	f.args = append(f.args, arg)
	return f.result
}

type fakeSearch struct {
	result models.ProviderResult
	calls  []websearch.Refinement
	texts  []string
}

func (f *fakeSearch) Fetch(ctx context.Context, text string, ref websearch.Refinement) models.ProviderResult {
	f.calls = append(f.calls, ref)
	f.texts = append(f.texts, text)
	return f.result
}

func createTestConfig() *Config {
	return &Config{
		DefaultWeatherPlace: "Jaipur",
		KnownPlaces:         []string{"jaipur", "new delhi", "delhi", "udaipur", "kota", "rajasthan", "mumbai"},
		AuthoritySites:      []string{"gov.in", "nic.in", "wikipedia.org"},
		SportsSites:         []string{"espncricinfo.com", "cricbuzz.com"},
	}
}

func searchHit() models.ProviderResult {
	return models.Success(websearch.ProviderName, &models.SearchResults{
		Backend: "google",
		Results: []models.SearchResult{{Title: "IND vs AUS", Snippet: "India 245/3", Link: "https://espncricinfo.com/x"}},
	})
}

func matchHit() models.ProviderResult {
	return models.Success("livesports", &models.MatchSummaries{Matches: []models.MatchSummary{{
		Participants: []string{"India", "Australia"}, Venue: "Jaipur", Status: "India need 40 runs", Score: "245/3",
	}}})
}

func newTestOrchestrator(t *testing.T, p Providers) *Orchestrator {
	return New(createTestConfig(), p, observability.NewNoop(), logger.NewTestLogger(t))
}

// ==========================
// Chains
// ==========================

func TestChain_PerIntent(t *testing.T) {
	o := newTestOrchestrator(t, Providers{})

	assert.Equal(t, []string{StepNews}, o.Chain(models.IntentNews))
	assert.Equal(t, []string{StepWeather}, o.Chain(models.IntentWeather))
	assert.Equal(t, []string{StepLiveSports, StepSportsSearch}, o.Chain(models.IntentLiveSports))
	assert.Equal(t, []string{StepAuthorityLookup}, o.Chain(models.IntentAuthorityLookup))
	assert.Equal(t, []string{StepGeneralSearch}, o.Chain(models.IntentGeneralSearch))
	assert.Empty(t, o.Chain(models.IntentDirectCompletion))
}

func TestRetrieve_LiveSportsSuccessSkipsSearch(t *testing.T) {
	sports := &fakeFetcher{result: matchHit()}
	search := &fakeSearch{result: searchHit()}
	o := newTestOrchestrator(t, Providers{Sports: sports, Search: search})

	rc := o.Retrieve(context.Background(), models.IntentLiveSports, langdetect.NewUtterance("India vs Australia live score"))

	require.Len(t, rc.Results, 1)
	assert.Equal(t, "livesports", rc.Results[0].Source)
	assert.Empty(t, search.calls)
	require.Len(t, rc.Attempts, 1)
	assert.Equal(t, "success", rc.Attempts[0].Outcome)
}

func TestRetrieve_LiveSportsFailureFallsBackToSearch(t *testing.T) {
	reasons := []error{
		apperrors.NewNotFoundError("livesports", "no live matches"),
		apperrors.NewUnconfiguredError("livesports", "CRICAPI_KEY"),
		apperrors.NewTimeoutError("livesports", context.DeadlineExceeded),
		apperrors.NewUpstreamError("livesports", nil),
	}

	for _, reason := range reasons {
		t.Run(string(apperrors.Reason(reason)), func(t *testing.T) {
			sports := &fakeFetcher{result: models.Failure("livesports", reason)}
			search := &fakeSearch{result: searchHit()}
			o := newTestOrchestrator(t, Providers{Sports: sports, Search: search})

			rc := o.Retrieve(context.Background(), models.IntentLiveSports, langdetect.NewUtterance("cricket score"))

			require.Len(t, rc.Results, 1)
			assert.Equal(t, websearch.ProviderName, rc.Results[0].Source)
			require.Len(t, search.calls, 1)
			assert.Equal(t, "sports", search.calls[0].Name)
			assert.Equal(t, []string{"espncricinfo.com", "cricbuzz.com"}, search.calls[0].Sites)

			require.Len(t, rc.Attempts, 2)
			assert.Equal(t, StepLiveSports, rc.Attempts[0].Step)
			assert.Equal(t, StepSportsSearch, rc.Attempts[1].Step)
		})
	}
}

func TestRetrieve_AllFailReturnsEmptyContext(t *testing.T) {
	sports := &fakeFetcher{result: models.Failure("livesports", apperrors.NewNotFoundError("livesports", "none"))}
	search := &fakeSearch{result: models.Failure(websearch.ProviderName, apperrors.NewNotFoundError(websearch.ProviderName, "none"))}
	o := newTestOrchestrator(t, Providers{Sports: sports, Search: search})

	rc := o.Retrieve(context.Background(), models.IntentLiveSports, langdetect.NewUtterance("match score"))
	assert.True(t, rc.Empty())
	assert.Len(t, rc.Attempts, 2)
}

func TestRetrieve_AuthorityUsesRefinementOnly(t *testing.T) {
	search := &fakeSearch{result: models.Failure(websearch.ProviderName, apperrors.NewNotFoundError(websearch.ProviderName, "none"))}
	o := newTestOrchestrator(t, Providers{Search: search})

	rc := o.Retrieve(context.Background(), models.IntentAuthorityLookup, langdetect.NewUtterance("  Who is the collector of Kota "))
	assert.True(t, rc.Empty())
	require.Len(t, search.calls, 1)
	assert.Equal(t, "authority", search.calls[0].Name)
	assert.Equal(t, "Who is the collector of Kota", search.texts[0])
}

func TestRetrieve_GeneralSearchUnrefined(t *testing.T) {
	search := &fakeSearch{result: searchHit()}
	o := newTestOrchestrator(t, Providers{Search: search})

	rc := o.Retrieve(context.Background(), models.IntentGeneralSearch, langdetect.NewUtterance("what is the price of gold"))
	assert.False(t, rc.Empty())
	require.Len(t, search.calls, 1)
	assert.Equal(t, websearch.Unrefined.Name, search.calls[0].Name)
}

func TestRetrieve_DirectCompletionCallsNothing(t *testing.T) {
	news := &fakeFetcher{}
	search := &fakeSearch{}
	o := newTestOrchestrator(t, Providers{News: news, Search: search})

	rc := o.Retrieve(context.Background(), models.IntentDirectCompletion, langdetect.NewUtterance("tell me a joke"))
	assert.True(t, rc.Empty())
	assert.Empty(t, rc.Attempts)
	assert.Empty(t, news.args)
	assert.Empty(t, search.calls)
}

func TestRetrieve_NewsLocality(t *testing.T) {
	news := &fakeFetcher{result: models.Success("news", &models.Headlines{Query: "Jaipur news", Items: []string{"a"}})}
	o := newTestOrchestrator(t, Providers{News: news})

	o.Retrieve(context.Background(), models.IntentNews, langdetect.NewUtterance("जयपुर की खबर"))
	o.Retrieve(context.Background(), models.IntentNews, langdetect.NewUtterance("आज की खबर"))

	assert.Equal(t, []string{"Jaipur", ""}, news.args)
}

func TestRetrieve_WeatherNotFoundIsEmpty(t *testing.T) {
	weather := &fakeFetcher{result: models.Failure("weather", apperrors.NewNotFoundError("weather", "no geocoding result"))}
	o := newTestOrchestrator(t, Providers{Weather: weather})

	rc := o.Retrieve(context.Background(), models.IntentWeather, langdetect.NewUtterance("weather in Jaipurxqz"))
	assert.True(t, rc.Empty())
	assert.Equal(t, []string{"Jaipurxqz"}, weather.args)
	require.Len(t, rc.Attempts, 1)
	assert.Equal(t, "not_found", rc.Attempts[0].Outcome)
}

func TestRetrieve_NilProviderIsUnconfigured(t *testing.T) {
	o := newTestOrchestrator(t, Providers{})

	rc := o.Retrieve(context.Background(), models.IntentNews, langdetect.NewUtterance("news"))
	assert.True(t, rc.Empty())
	require.Len(t, rc.Attempts, 1)
	assert.Equal(t, "unconfigured", rc.Attempts[0].Outcome)
}

package websearch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	httpclient "neelakshi-ai/internal/common/http"
	"neelakshi-ai/internal/models"
)

// GoogleBackend queries the Custom Search JSON API.
type GoogleBackend struct {
	baseURL  string
	apiKey   string
	engineID string
	client   *httpclient.Client
}

func NewGoogleBackend(config *Config) *GoogleBackend {
	return &GoogleBackend{
		baseURL:  config.GoogleBaseURL,
		apiKey:   config.GoogleAPIKey,
		engineID: config.GoogleEngineID,
		client:   httpclient.NewClient(config.Timeout),
	}
}

func (g *GoogleBackend) Name() string { return "google" }

func (g *GoogleBackend) Configured() bool {
	return g.baseURL != "" && g.apiKey != "" && g.engineID != ""
}

func (g *GoogleBackend) Search(ctx context.Context, q Query, max int) ([]models.SearchResult, error) {
	var apiResponse struct {
		Items []struct {
			Link    string `json:"link"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Mime    string `json:"mime"`
		} `json:"items"`
	}

	if err := g.client.GetJSON(ctx, g.buildSearchURL(q.Refinement.Apply(q.Text), max), &apiResponse); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(apiResponse.Items))
	for _, item := range apiResponse.Items {
		// Skip non-HTML
		if item.Mime != "" && !strings.Contains(item.Mime, "html") {
			continue
		}
		results = append(results, models.SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}
	return results, nil
}

func (g *GoogleBackend) buildSearchURL(query string, max int) string {
	// the API caps num at 10
	if max <= 0 || max > 10 {
		max = 10
	}
	params := url.Values{}
	params.Add("key", g.apiKey)
	params.Add("cx", g.engineID)
	params.Add("q", query)
	params.Add("num", fmt.Sprintf("%d", max))
	return g.baseURL + "?" + params.Encode()
}

package websearch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	httpclient "neelakshi-ai/internal/common/http"
	"neelakshi-ai/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// DuckDuckGoBackend scrapes the keyless HTML results page.
type DuckDuckGoBackend struct {
	baseURL string
	enabled bool
	client  *httpclient.Client
}

func NewDuckDuckGoBackend(config *Config) *DuckDuckGoBackend {
	return &DuckDuckGoBackend{
		baseURL: config.DuckDuckGoBaseURL,
		enabled: config.DuckDuckGoEnabled,
		client:  httpclient.NewClient(config.Timeout),
	}
}

func (d *DuckDuckGoBackend) Name() string { return "duckduckgo" }

func (d *DuckDuckGoBackend) Configured() bool {
	return d.enabled && d.baseURL != ""
}

func (d *DuckDuckGoBackend) Search(ctx context.Context, q Query, max int) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Add("q", q.Refinement.Apply(q.Text))
	params.Add("kl", "in-en")

	body, err := d.client.Get(ctx, d.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var results []models.SearchResult
	doc.Find(".result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		anchor := s.Find("a.result__a").First()
		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			return true
		}
		href, _ := anchor.Attr("href")

		results = append(results, models.SearchResult{
			Title:   title,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
			Link:    resolveRedirect(href),
		})
		return max <= 0 || len(results) < max
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<target> links.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

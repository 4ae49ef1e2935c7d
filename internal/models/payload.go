// internal/models/payload.go
package models

import (
	"fmt"
	"strings"
)

// Payload is the success value of a provider call. Snippets renders it as
// ordered lines of text for prompts and raw fallback replies.
type Payload interface {
	Kind() string
	Snippets() []string
	Empty() bool
}

type Headlines struct {
	Query string   `json:"query"`
	Items []string `json:"items"`
}

func (h *Headlines) Kind() string       { return "headlines" }
func (h *Headlines) Snippets() []string { return h.Items }
func (h *Headlines) Empty() bool        { return h == nil || len(h.Items) == 0 }

type WeatherReport struct {
	Place       string  `json:"place"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Temperature float64 `json:"temperature"` // °C
	WindSpeed   float64 `json:"windSpeed"`   // km/h
}

func (w *WeatherReport) Kind() string { return "weather" }

func (w *WeatherReport) Snippets() []string {
	return []string{fmt.Sprintf("%s: temperature %.1f°C, wind speed %.1f km/h", w.Place, w.Temperature, w.WindSpeed)}
}

func (w *WeatherReport) Empty() bool { return w == nil }

type MatchSummary struct {
	Participants []string `json:"participants"`
	Venue        string   `json:"venue"`
	Status       string   `json:"status"`
	Score        string   `json:"score,omitempty"`
}

func (m MatchSummary) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(m.Participants, " vs "))
	if m.Venue != "" {
		b.WriteString(" at ")
		b.WriteString(m.Venue)
	}
	if m.Status != "" {
		b.WriteString(": ")
		b.WriteString(m.Status)
	}
	if m.Score != "" {
		b.WriteString(" (")
		b.WriteString(m.Score)
		b.WriteString(")")
	}
	return b.String()
}

type MatchSummaries struct {
	Matches []MatchSummary `json:"matches"`
}

func (m *MatchSummaries) Kind() string { return "matches" }

func (m *MatchSummaries) Snippets() []string {
	out := make([]string, 0, len(m.Matches))
	for _, match := range m.Matches {
		out = append(out, match.String())
	}
	return out
}

func (m *MatchSummaries) Empty() bool { return m == nil || len(m.Matches) == 0 }

type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type SearchResults struct {
	Backend string         `json:"backend"`
	Results []SearchResult `json:"results"`
}

func (s *SearchResults) Kind() string { return "search" }

func (s *SearchResults) Snippets() []string {
	out := make([]string, 0, len(s.Results))
	for _, r := range s.Results {
		line := r.Title
		if r.Snippet != "" {
			line += ": " + r.Snippet
		}
		if r.Link != "" {
			line += " (" + r.Link + ")"
		}
		out = append(out, line)
	}
	return out
}

func (s *SearchResults) Empty() bool { return s == nil || len(s.Results) == 0 }

type Completion struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

func (c *Completion) Kind() string       { return "completion" }
func (c *Completion) Snippets() []string { return []string{c.Text} }
func (c *Completion) Empty() bool        { return c == nil || strings.TrimSpace(c.Text) == "" }

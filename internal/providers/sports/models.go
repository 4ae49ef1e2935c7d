// internal/providers/sports/models.go
package sports

type currentMatchesResponse struct {
	Status string  `json:"status"`
	Reason string  `json:"reason,omitempty"`
	Data   []match `json:"data"`
}

type match struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MatchType    string   `json:"matchType"`
	Status       string   `json:"status"`
	Venue        string   `json:"venue"`
	Teams        []string `json:"teams"`
	Score        []score  `json:"score"`
	MatchStarted bool     `json:"matchStarted"`
	MatchEnded   bool     `json:"matchEnded"`
}

type score struct {
	Runs    int     `json:"r"`
	Wickets int     `json:"w"`
	Overs   float64 `json:"o"`
	Inning  string  `json:"inning"`
}

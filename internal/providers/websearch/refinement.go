package websearch

import (
	"strings"
)

// Refinement augments a user query with extra terms and a set of preferred
// source domains.
type Refinement struct {
	Name  string
	Terms []string
	Sites []string
}

var Unrefined = Refinement{Name: "general"}

func AuthorityRefinement(sites []string) Refinement {
	return Refinement{Name: "authority", Sites: sites}
}

func SportsRefinement(sites []string) Refinement {
	return Refinement{Name: "sports", Terms: []string{"live score"}, Sites: sites}
}

// Keywords is the query text plus refinement terms, without site operators.
func (r Refinement) Keywords(query string) string {
	parts := append([]string{strings.TrimSpace(query)}, r.Terms...)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Apply renders the refined query with site: operators, the form understood
// by web search engines.
func (r Refinement) Apply(query string) string {
	q := r.Keywords(query)
	if len(r.Sites) == 0 {
		return q
	}

	sites := make([]string, len(r.Sites))
	for i, s := range r.Sites {
		sites[i] = "site:" + s
	}
	return q + " (" + strings.Join(sites, " OR ") + ")"
}

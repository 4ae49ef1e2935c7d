package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"neelakshi-ai/internal/common/database"
	"neelakshi-ai/internal/models"
)

// ElasticBackend searches a curated knowledge index. Documents are expected
// to carry title, content and url fields; preferred sites boost but never
// filter.
type ElasticBackend struct {
	es    *database.ElasticsearchClient
	index string
}

func NewElasticBackend(es *database.ElasticsearchClient, index string) *ElasticBackend {
	return &ElasticBackend{es: es, index: index}
}

func (e *ElasticBackend) Name() string { return "elasticsearch" }

func (e *ElasticBackend) Configured() bool {
	return e.es != nil && e.es.Client != nil && e.index != ""
}

type elasticDoc struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

func (e *ElasticBackend) Search(ctx context.Context, q Query, max int) ([]models.SearchResult, error) {
	body, err := json.Marshal(buildElasticQuery(q, max))
	if err != nil {
		return nil, err
	}

	client := e.es.Client
	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(e.index),
		client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source elasticDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]models.SearchResult, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		snippet := hit.Source.Snippet
		if snippet == "" {
			snippet = truncate(hit.Source.Content, 300)
		}
		results = append(results, models.SearchResult{
			Title:   hit.Source.Title,
			Snippet: snippet,
			Link:    hit.Source.URL,
		})
	}
	return results, nil
}

func buildElasticQuery(q Query, max int) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  q.Refinement.Keywords(q.Text),
					"fields": []string{"title^2", "snippet", "content"},
				},
			},
		},
	}

	if len(q.Refinement.Sites) > 0 {
		should := make([]interface{}, 0, len(q.Refinement.Sites))
		for _, site := range q.Refinement.Sites {
			should = append(should, map[string]interface{}{
				"wildcard": map[string]interface{}{
					"url": map[string]interface{}{"value": "*" + site + "*", "boost": 2.0},
				},
			})
		}
		boolQuery["should"] = should
	}

	return map[string]interface{}{
		"size":  max,
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

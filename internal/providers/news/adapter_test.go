package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"neelakshi-ai/internal/common/config"
	"neelakshi-ai/internal/common/database"
	apperrors "neelakshi-ai/internal/common/errors"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig(baseURL string) *Config {
	return &Config{
		FeedBaseURL: baseURL,
		Language:    "hi",
		Region:      "IN",
		MaxItems:    5,
		Timeout:     time.Second,
		CacheTTL:    time.Minute,
	}
}

type rssItem struct {
	title   string
	pubDate string
}

func createRSS(items []rssItem) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Google News</title>`)
	for _, it := range items {
		b.WriteString("<item><title>" + it.title + "</title>")
		if it.pubDate != "" {
			b.WriteString("<pubDate>" + it.pubDate + "</pubDate>")
		}
		b.WriteString("</item>")
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func day(d int) string {
	return time.Date(2026, 10, d, 9, 0, 0, 0, time.UTC).Format(time.RFC1123Z)
}

func newFeedServer(t *testing.T, body string, hits *int32) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// ==========================
// Core Functionality Tests
// ==========================

func TestAdapter_Fetch_TopFiveNewestFirst(t *testing.T) {
	body := createRSS([]rssItem{
		{"Old story", day(1)},
		{"Newest story", day(9)},
		{"Undated story", ""},
		{"Third newest", day(7)},
		{"Second newest", day(8)},
		{"Tie A", day(5)},
		{"Tie B", day(5)},
	})

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	adapter := NewAdapter(createTestConfig(server.URL), nil, logger.NewTestLogger(t))
	result := adapter.Fetch(context.Background(), "Jaipur")

	require.True(t, result.OK(), "reason %s: %v", result.Reason, result.Err)
	headlines := result.Payload.(*models.Headlines)
	assert.Equal(t, []string{"Newest story", "Second newest", "Third newest", "Tie A", "Tie B"}, headlines.Items)
	assert.Equal(t, "Jaipur news", headlines.Query)

	assert.Contains(t, gotQuery, "q=Jaipur+news")
	assert.Contains(t, gotQuery, "hl=hi")
	assert.Contains(t, gotQuery, "gl=IN")
	assert.Contains(t, gotQuery, "ceid=IN%3Ahi")
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "India news", Query(""))
	assert.Equal(t, "India news", Query("   "))
	assert.Equal(t, "Kota news", Query("Kota"))
}

// ==========================
// Failure Mapping Tests
// ==========================

func TestAdapter_Fetch_EmptyFeedIsNotFound(t *testing.T) {
	server := newFeedServer(t, createRSS(nil), nil)

	result := NewAdapter(createTestConfig(server.URL), nil, logger.NewTestLogger(t)).Fetch(context.Background(), "")

	assert.False(t, result.OK())
	assert.Equal(t, apperrors.ErrCodeNotFound, result.Reason)
}

func TestAdapter_Fetch_UnreachableIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	result := NewAdapter(createTestConfig(server.URL), nil, logger.NewTestLogger(t)).Fetch(context.Background(), "Delhi")

	assert.Equal(t, apperrors.ErrCodeNotFound, result.Reason)
}

func TestAdapter_Fetch_NotAFeedIsUpstreamError(t *testing.T) {
	server := newFeedServer(t, "this is not xml or json", nil)

	result := NewAdapter(createTestConfig(server.URL), nil, logger.NewTestLogger(t)).Fetch(context.Background(), "")

	assert.Equal(t, apperrors.ErrCodeUpstreamError, result.Reason)
}

func TestAdapter_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	cfg := createTestConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond

	start := time.Now()
	result := NewAdapter(cfg, nil, logger.NewTestLogger(t)).Fetch(context.Background(), "")

	assert.Equal(t, apperrors.ErrCodeTimeout, result.Reason)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

// ==========================
// Cache Tests
// ==========================

func TestAdapter_Fetch_CacheHitSkipsUpstream(t *testing.T) {
	mr := miniredis.RunT(t)
	redis, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer redis.Close()

	var hits int32
	server := newFeedServer(t, createRSS([]rssItem{{"Rajasthan budget", day(3)}}), &hits)

	log := logger.NewTestLogger(t)
	adapter := NewAdapter(createTestConfig(server.URL), database.NewResultCache(redis, log), log)

	first := adapter.Fetch(context.Background(), "Rajasthan")
	second := adapter.Fetch(context.Background(), "rajasthan")

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.Equal(t, first.Payload.Snippets(), second.Payload.Snippets())
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

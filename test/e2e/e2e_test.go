// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"neelakshi-ai/internal/app"
	"neelakshi-ai/internal/common/config"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/server"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Google News</title>
<item><title>जयपुर में नई मेट्रो लाइन शुरू</title><pubDate>Sat, 14 Mar 2026 08:00:00 GMT</pubDate></item>
<item><title>राजस्थान में मानसून की दस्तक</title><pubDate>Sat, 14 Mar 2026 07:00:00 GMT</pubDate></item>
<item><title>शेयर बाजार में तेजी</title><pubDate>Sat, 14 Mar 2026 06:00:00 GMT</pubDate></item>
<item><title>दिल्ली में बारिश</title><pubDate>Sat, 14 Mar 2026 05:00:00 GMT</pubDate></item>
<item><title>IPL 2026 का कार्यक्रम घोषित</title><pubDate>Sat, 14 Mar 2026 04:00:00 GMT</pubDate></item>
<item><title>पुरानी खबर</title><pubDate>Fri, 13 Mar 2026 04:00:00 GMT</pubDate></item>
</channel></rss>`

const ddgPage = `<html><body>
<div class="result results_links">
  <h2><a class="result__a" href="https://www.espncricinfo.com/live">India vs Australia, 2nd T20I - Live Cricket Score</a></h2>
  <a class="result__snippet">India 245/3 (20 ov) vs Australia</a>
</div>
</body></html>`

// upstream fakes every external provider on one server.
type upstream struct {
	server    *httptest.Server
	llmDown   atomic.Bool
	llmCalls  atomic.Int32
	newsCalls atomic.Int32
	lastLLM   atomic.Value
}

func newUpstream(t *testing.T) *upstream {
	u := &upstream{}
	mux := http.NewServeMux()

	mux.HandleFunc("/rss/search", func(w http.ResponseWriter, r *http.Request) {
		u.newsCalls.Add(1)
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFeed))
	})
	mux.HandleFunc("/geocode", func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.URL.Query().Get("name"), "jaipur") {
			w.Write([]byte(`{"results":[{"name":"Jaipur","latitude":26.9124,"longitude":75.7873,"country":"India"}]}`))
			return
		}
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_weather":{"temperature":31.3,"windspeed":12.0,"weathercode":0}}`))
	})
	mux.HandleFunc("/cricket", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":[{"name":"A vs B","teams":["A","B"],"matchStarted":true,"matchEnded":true}]}`))
	})
	mux.HandleFunc("/ddg/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(ddgPage))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		u.llmCalls.Add(1)
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 {
			u.lastLLM.Store(req.Messages[len(req.Messages)-1].Content)
		}

		if u.llmDown.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"composed answer"},"finish_reason":"stop"}]}`))
	})

	u.server = httptest.NewServer(mux)
	t.Cleanup(u.server.Close)
	return u
}

func writeConfig(t *testing.T, base, redisAddr string) string {
	yaml := fmt.Sprintf(`
app:
  name: neelakshi-ai
redis:
  address: %[2]s
providers:
  news:
    base_url: %[1]s/rss/search
    timeout: 2s
  weather:
    geocode_url: %[1]s/geocode
    forecast_url: %[1]s/forecast
    timeout: 2s
  sports:
    base_url: %[1]s/cricket
    api_key: test-cricket-key
    timeout: 2s
  search:
    backends: [duckduckgo]
    timeout: 2s
    duckduckgo:
      enabled: true
      base_url: %[1]s/ddg/
  llm:
    models: [gpt-4o-mini]
    timeout: 2s
    openai:
      api_key: test-openai-key
      base_url: %[1]s/v1
observability:
  trace_sample_ratio: 1
`, base, redisAddr)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func setup(t *testing.T) (*upstream, http.Handler) {
	up := newUpstream(t)
	mr := miniredis.RunT(t)

	cfg, err := config.LoadFromFile(writeConfig(t, up.server.URL, mr.Addr()))
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	a, err := app.New(context.Background(), cfg, log, app.Options{Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	return up, server.NewServer(server.LoadConfig(cfg), a.Assistant, a.Checks, log).Router()
}

func chat(t *testing.T, h http.Handler, message string) string {
	body, _ := json.Marshal(map[string]string{"message": message})
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp server.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Reply)
	return resp.Reply
}

func TestE2E_NewsComposedAndCached(t *testing.T) {
	up, h := setup(t)

	assert.Equal(t, "composed answer", chat(t, h, "आज की खबर"))
	prompt, _ := up.lastLLM.Load().(string)
	assert.Contains(t, prompt, "जयपुर में नई मेट्रो लाइन शुरू")
	assert.Contains(t, prompt, "IPL 2026 का कार्यक्रम घोषित")
	assert.NotContains(t, prompt, "पुरानी खबर")

	chat(t, h, "आज की खबर")
	assert.EqualValues(t, 1, up.newsCalls.Load())
}

func TestE2E_WeatherRawWhenLanguageModelDown(t *testing.T) {
	up, h := setup(t)
	up.llmDown.Store(true)

	reply := chat(t, h, "weather in Jaipur")
	assert.Equal(t, "Jaipur: temperature 31.3°C, wind speed 12.0 km/h", reply)
	assert.GreaterOrEqual(t, up.llmCalls.Load(), int32(1))
}

func TestE2E_UnknownPlaceFallsBackToApology(t *testing.T) {
	up, h := setup(t)
	up.llmDown.Store(true)

	reply := chat(t, h, "weather in Jaipurxqz")
	assert.Contains(t, reply, "Sorry")
}

func TestE2E_SportsFallsBackToSearch(t *testing.T) {
	up, h := setup(t)
	up.llmDown.Store(true)

	reply := chat(t, h, "India vs Australia live score")
	assert.Contains(t, reply, "India 245/3 (20 ov) vs Australia")
	assert.Contains(t, reply, "https://www.espncricinfo.com/live")
}

func TestE2E_EmptyMessage(t *testing.T) {
	up, h := setup(t)

	assert.Equal(t, "Please say something 😊", chat(t, h, "   "))
	assert.Zero(t, up.llmCalls.Load())
}

func TestE2E_Readiness(t *testing.T) {
	_, h := setup(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

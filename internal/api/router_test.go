package api

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"brand-voice-studio/internal/abtest"
	"brand-voice-studio/internal/content"
	"brand-voice-studio/internal/db"
	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/market"
	"brand-voice-studio/internal/metrics"
)

const testStatsPage = `<html><body>
<h1>July 2025 Market Statistics</h1>
<div><h3>NEW LISTINGS</h3><p>1,200</p><span>+2.50%</span></div>
<div><h3>PROPERTIES SOLD</h3><p>600</p><span>+6.10%</span></div>
<div><h3>AVERAGE PRICE</h3><p>$610,500</p><span>-1.20%</span></div>
</body></html>`

// testEnv exposes the pieces behind a test router
type testEnv struct {
	db         *db.DB
	metrics    *metrics.Collector
	staticDir  string
	marketHits *atomic.Int32
	marketDown *atomic.Bool
}

func setupTestRouter(t *testing.T) (*Router, *testEnv, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_api_*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	database, err := db.NewDB(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	env := &testEnv{
		db:         database,
		metrics:    metrics.NewCollector(),
		staticDir:  t.TempDir(),
		marketHits: &atomic.Int32{},
		marketDown: &atomic.Bool{},
	}
	if err := os.WriteFile(filepath.Join(env.staticDir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatalf("failed to write index.html: %v", err)
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.marketHits.Add(1)
		if env.marketDown.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(testStatsPage))
	}))

	logger := logging.NewNopLogger()
	generator := content.NewGenerator(
		content.WithRand(rand.New(rand.NewPCG(7, 11))),
		content.WithLogger(logger),
	)
	router := NewRouter(Dependencies{
		DB:        database,
		Generator: generator,
		ABTests:   abtest.NewService(database, abtest.WithRecorder(env.metrics), abtest.WithLogger(logger)),
		Market: market.NewService(
			market.NewClient(upstream.URL),
			market.WithFetchRecorder(env.metrics),
			market.WithLogger(logger),
		),
		Metrics:   env.metrics,
		Logger:    logger,
		StaticDir: env.staticDir,
	})

	cleanup := func() {
		upstream.Close()
		database.Close()
		os.Remove(tmpFile.Name())
	}
	return router, env, cleanup
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, http.MethodOptions, "/api/content/generate", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected allow-origin '*', got '%s'", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "DELETE") {
		t.Errorf("expected DELETE in allowed methods, got '%s'", got)
	}
}

func TestRouter_Health(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRouter_StaticFallback(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	for _, path := range []string{"/", "/dashboard/settings"} {
		w := doRequest(t, router, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusOK, w.Code)
		}
		if !strings.Contains(w.Body.String(), "app") {
			t.Errorf("%s: expected index.html, got '%s'", path, w.Body.String())
		}
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	doRequest(t, router, http.MethodPost, "/api/content/generate", `{"content_type":"educational"}`)
	w := doRequest(t, router, http.MethodGet, "/metrics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `brand_voice_content_generated_total{content_type="educational"} 1`) {
		t.Errorf("expected content counter in metrics output")
	}
	if !strings.Contains(body, `endpoint="/api/content/generate"`) {
		t.Errorf("expected route pattern label in metrics output")
	}
}

func TestRecoverer_ReturnsJSON500(t *testing.T) {
	handler := recoverer(logging.Component(nil, "test"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	resp := decodeBody[ErrorResponse](t, w)
	if resp.Success || resp.Error != "internal server error" {
		t.Errorf("unexpected error body: %+v", resp)
	}
}

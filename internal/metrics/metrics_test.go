package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector()
	c.RecordContent("educational")
	c.RecordContent("educational")
	c.RecordFetch("cache_hit")
	c.RecordTransition("running")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.contentGenerated.WithLabelValues("educational")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.marketFetches.WithLabelValues("cache_hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.abTestTransitions.WithLabelValues("running")))
}

func TestCollector_MiddlewareUsesRoutePattern(t *testing.T) {
	c := NewCollector()
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/items/42", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/api/items/{id}", "418")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.RecordContent("community")

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `brand_voice_content_generated_total{content_type="community"} 1`))
}

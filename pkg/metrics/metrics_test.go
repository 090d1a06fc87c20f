package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profanity/pkg/censor"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetrics_ObserveAnalysis(t *testing.T) {
	m := New("test")

	m.ObserveAnalysis(censor.PROFANE&censor.SEVERE|censor.MEAN&censor.SEVERE, true)
	m.ObserveAnalysis(censor.SAFE, false)

	body := scrape(t, m.Handler())
	assert.Contains(t, body, `censor_analyses_total{inappropriate="true",service="test"} 1`)
	assert.Contains(t, body, `censor_analyses_total{inappropriate="false",service="test"} 1`)
	assert.Contains(t, body, `censor_detections_total{category="profane",service="test"} 1`)
	assert.Contains(t, body, `censor_detections_total{category="mean",service="test"} 1`)
	assert.Contains(t, body, `censor_detections_total{category="safe",service="test"} 1`)
	assert.Contains(t, body, `censor_detections_total{category="sexual",service="test"} 0`)
}

func TestMetrics_Middleware(t *testing.T) {
	m := New("test")

	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusTeapot, rr.Code)
	}

	body := scrape(t, r)
	assert.Contains(t, body, `http_request_duration_seconds_count{endpoint="/items/{id}",method="GET",service="test",status_code="418"} 2`)
	assert.Contains(t, body, `http_in_flight_requests{service="test"} 0`)
	assert.NotContains(t, body, `endpoint="/metrics"`)
}

func TestNew_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("a")
	})
}

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blogful/internal/metrics"
)

func TestRecorder(t *testing.T) {
	exporter, err := metrics.NewExporter()
	require.NoError(t, err)

	rec := metrics.NewRecorder(exporter.MeterProvider().Meter("blogful_test"))

	r := chi.NewRouter()
	r.Use(rec.Middleware)
	r.Get("/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, target := range []string{"/widgets/1", "/widgets/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	scrape := httptest.NewRecorder()
	exporter.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, scrape.Code)

	body := scrape.Body.String()
	assert.Contains(t, body, "http_server_completed_count")
	assert.Contains(t, body, "http_server_latency")
	assert.Contains(t, body, `route="/widgets/{id}"`)
	assert.Contains(t, body, `status="418"`)
	assert.NotContains(t, body, `route="/widgets/1"`)
}

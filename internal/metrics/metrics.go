// Package metrics exports request metrics in the Prometheus format through
// the OpenTelemetry metric API.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

// NewExporter builds a pull exporter and installs its provider as the
// global one. Serve the exporter itself on /metrics.
func NewExporter() (*prometheus.Exporter, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("init prometheus exporter: %w", err)
	}

	global.SetMeterProvider(exporter.MeterProvider())

	return exporter, nil
}

// Recorder counts completed requests and records their latency, labelled
// by method, chi route pattern and status.
type Recorder struct {
	completed metric.Int64Counter
	latency   metric.Float64ValueRecorder
}

func NewRecorder(meter metric.Meter) *Recorder {
	m := metric.Must(meter)

	return &Recorder{
		completed: m.NewInt64Counter(
			"http/server/completed_count",
			metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
		),
		latency: m.NewFloat64ValueRecorder(
			"http/server/latency",
			metric.WithDescription("Request latency in milliseconds, by HTTP method, route and response status"),
		),
	}
}

func (rec *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		labels := []attribute.KeyValue{
			attribute.String("method", r.Method),
			attribute.String("route", routePattern(r)),
			attribute.Int("status", status),
		}

		rec.completed.Add(r.Context(), 1, labels...)
		rec.latency.Record(r.Context(), float64(time.Since(start))/float64(time.Millisecond), labels...)
	})
}

// routePattern keeps label cardinality bounded: /api/articles/7 is
// reported as /api/articles/{id}.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unknown"
	}

	if p := rctx.RoutePattern(); p != "" {
		return p
	}

	return "unmatched"
}

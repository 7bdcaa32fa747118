// ABOUTME: Prometheus instrumentation middleware for API endpoints
// ABOUTME: Records request counts and latency per path and status

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coldroom_http_requests_total",
			Help: "Total HTTP requests by path and status code.",
		},
		[]string{"path", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coldroom_http_request_duration_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	datasetReloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coldroom_dataset_reloads_total",
			Help: "Total successful dataset hot reloads.",
		},
	)
)

// RecordDatasetReload increments the dataset reload counter.
func RecordDatasetReload() {
	datasetReloadsTotal.Inc()
}

// Metrics returns middleware that records Prometheus metrics for each
// request.
func Metrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(wrapped, r)

		path := r.URL.Path
		requestsTotal.WithLabelValues(path, strconv.Itoa(wrapped.statusCode)).Inc()
		requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lottery",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lottery",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lottery",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	syncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lottery",
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Total number of draw history syncs.",
		},
		[]string{"game", "status"},
	)

	syncDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lottery",
			Subsystem: "sync",
			Name:      "duration_seconds",
			Help:      "Duration of draw history syncs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"game"},
	)

	drawsStored = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lottery",
			Subsystem: "store",
			Name:      "draws",
			Help:      "Number of draws stored after the last successful sync.",
		},
		[]string{"game"},
	)

	rowsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lottery",
			Subsystem: "sync",
			Name:      "rows_skipped_total",
			Help:      "Total number of CSV rows rejected while syncing.",
		},
		[]string{"game"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		syncRuns,
		syncDuration,
		drawsStored,
		rowsSkipped,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted tracks an in-flight request; call the returned func when it ends.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// RecordHTTPRequest records one handled request. path should be the route
// template so label cardinality stays bounded.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordSync records the outcome of one sync of game.
func RecordSync(game string, success bool, duration time.Duration, stored, skipped int) {
	status := "success"
	if !success {
		status = "failure"
	}
	syncRuns.WithLabelValues(game, status).Inc()
	syncDuration.WithLabelValues(game).Observe(duration.Seconds())
	if success {
		drawsStored.WithLabelValues(game).Set(float64(stored))
		rowsSkipped.WithLabelValues(game).Add(float64(skipped))
	}
}

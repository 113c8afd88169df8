package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wardhub",
			Name:      "search_source_fetch_duration_seconds",
			Help:      "Candidate source fetch duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"source", "status"},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wardhub",
			Name:      "search_requests_total",
			Help:      "Total number of global search requests",
		},
		[]string{"status"}, // "ok" / "empty" / "error"
	)

	PreviewRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wardhub",
			Name:      "schedule_preview_requests_total",
			Help:      "Total number of schedule preview requests",
		},
		[]string{"status"}, // "ok" / "empty" / "error"
	)
)

func init() {
	prometheus.MustRegister(SourceFetchDuration)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(PreviewRequestsTotal)
}

// ObserveSourceFetch records one candidate source fetch.
func ObserveSourceFetch(source string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SourceFetchDuration.WithLabelValues(source, status).Observe(time.Since(start).Seconds())
}

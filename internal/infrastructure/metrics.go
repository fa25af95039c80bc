package infrastructure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics exposed on /metrics. Data-quality problems are
// absorbed as counts per the error-handling design, and these counters
// are where those counts become observable.
var (
	RecordsCleaned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autotrends_records_cleaned_total",
		Help: "Records kept after cleaning, per dataset.",
	}, []string{"dataset"})

	RecordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autotrends_records_dropped_total",
		Help: "Records dropped during cleaning, per dataset and reason.",
	}, []string{"dataset", "reason"})

	UnparsableValues = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autotrends_unparsable_values_total",
		Help: "Numeric cells that failed normalization, per dataset.",
	}, []string{"dataset"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "autotrends_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// ObserveHTTPRequest records one request into the latency histogram.
func ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

// CountCleaning records the outcome of one dataset load.
func CountCleaning(dataset string, kept, unparsable int, dropped map[string]int) {
	RecordsCleaned.WithLabelValues(dataset).Add(float64(kept))
	UnparsableValues.WithLabelValues(dataset).Add(float64(unparsable))
	for reason, n := range dropped {
		RecordsDropped.WithLabelValues(dataset, reason).Add(float64(n))
	}
}

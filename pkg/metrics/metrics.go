package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ArticlesRatedTotal  *prometheus.CounterVec
	StageDuration       *prometheus.HistogramVec
	BatchSize           prometheus.Histogram
	CardCacheRequests   *prometheus.CounterVec

	initOnce sync.Once
)

// Init registers all collectors with the default registry. Calls after the
// first are no-ops.
func Init() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		ArticlesRatedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "articles_rated_total",
				Help: "Total number of article cards returned, by status. Cache hits are included.",
			},
			[]string{"status"},
		)

		StageDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_stage_duration_seconds",
				Help:    "Duration of article pipeline stages.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
			},
			[]string{"stage"},
		)

		BatchSize = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "batch_size",
				Help:    "Number of URLs per accepted rating request.",
				Buckets: []float64{1, 2, 3, 5, 8, 10, 20, 50},
			},
		)

		CardCacheRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "card_cache_requests_total",
				Help: "Card cache lookups, by result.",
			},
			[]string{"result"}, // hit, miss, error
		)
	})
}

// The helpers below are no-ops until Init has run, so library code and tests
// can record without touching the global registry.

// RecordArticle counts one card handed back to a caller.
func RecordArticle(status string) {
	if ArticlesRatedTotal != nil {
		ArticlesRatedTotal.WithLabelValues(status).Inc()
	}
}

// ObserveStage records the time spent in a pipeline stage since start.
func ObserveStage(stage string, start time.Time) {
	if StageDuration != nil {
		StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

// ObserveBatch records the size of an accepted batch.
func ObserveBatch(size int) {
	if BatchSize != nil {
		BatchSize.Observe(float64(size))
	}
}

// RecordCacheLookup counts a card cache lookup by result.
func RecordCacheLookup(result string) {
	if CardCacheRequests != nil {
		CardCacheRequests.WithLabelValues(result).Inc()
	}
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, path, status string, duration time.Duration) {
	if HTTPRequestsTotal == nil {
		return
	}
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

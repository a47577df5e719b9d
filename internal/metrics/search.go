package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crsdex",
			Name:      "searches_total",
			Help:      "Total number of search calls",
		},
		[]string{"path", "outcome"}, // path: "direct" / "variant"; outcome: "hit" / "empty" / "partial"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crsdex",
			Name:      "search_duration_seconds",
			Help:      "Search call duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"path"},
	)

	VariantsGenerated = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "crsdex",
			Name:      "search_variants_generated",
			Help:      "Variants generated per search query",
			Buckets:   []float64{1, 2, 4, 6, 8, 10, 12, 15},
		},
	)

	ResponseCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crsdex",
			Name:      "response_cache_total",
			Help:      "Response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RetrievalErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "crsdex",
			Name:      "retrieval_errors_total",
			Help:      "Registry retrieval failures absorbed per variant",
		},
	)
)

func init() {
	prometheus.MustRegister(
		SearchesTotal,
		SearchDuration,
		VariantsGenerated,
		ResponseCacheTotal,
		RetrievalErrorsTotal,
	)
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine and result cache Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searxng_requests_total",
			Help:      "Total number of search engine requests",
		},
		[]string{"kind", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "searxng_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
		},
		[]string{"kind"},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results_returned",
			Help:      "Normalized results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 50, 100},
		},
		[]string{"kind"},
	)

	SearchResultsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_results_dropped_total",
			Help:      "Raw results rejected during normalization",
		},
		[]string{"kind", "reason"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

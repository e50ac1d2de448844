package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Store and cache Prometheus metrics.
var (
	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_query_duration_seconds",
			Help:      "Catalog store query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op"},
	)

	StoreQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_queries_total",
			Help:      "Total catalog store queries",
		},
		[]string{"op", "status"}, // "ok" / "error"
	)

	FacetCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facet_cache_total",
			Help:      "Facet cache hits and misses",
		},
		[]string{"facet", "result"}, // "hit" / "miss"
	)
)

var registerOnce sync.Once

// RegisterStoreMetrics registers store and cache metrics. Called once from main.
func RegisterStoreMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(StoreQueryDuration)
		prometheus.MustRegister(StoreQueriesTotal)
		prometheus.MustRegister(FacetCacheTotal)
	})
}

// ObserveQuery records one store query. Unregistered collectors still count,
// so tests can read them through testutil.
func ObserveQuery(op string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreQueryDuration.WithLabelValues(op).Observe(d.Seconds())
	StoreQueriesTotal.WithLabelValues(op, status).Inc()
}

// Package metrics exposes Prometheus collectors for the analysis pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "advisor_analyses_total", Help: "Pipeline invocations by symbol and outcome"},
		[]string{"symbol", "status"},
	)
	SignalsDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "advisor_signals_detected_total", Help: "Crossover signals found by direction"},
		[]string{"direction"},
	)
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_provider_fetch_duration_seconds",
			Help:    "Market data fetch latency by provider",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "advisor_bar_cache_hits_total", Help: "Price series served from the bar cache"},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "advisor_bar_cache_misses_total", Help: "Price series fetched upstream"},
	)
)

func init() {
	prometheus.MustRegister(AnalysesTotal, SignalsDetected, FetchDuration, CacheHits, CacheMisses)
}

package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Match outcome label values. Bounded by construction.
const (
	outcomeMatched   = "matched"
	outcomeUnmatched = "unmatched"
)

// routerMetrics contains Prometheus metrics for the router hot path
// and table lifecycle.
type routerMetrics struct {
	matchesTotal  *prometheus.CounterVec
	matchDuration prometheus.Histogram
	tableRoutes   prometheus.Gauge
	tableSwaps    prometheus.Counter
}

var (
	routerMetricsInstance *routerMetrics
	routerMetricsOnce     sync.Once
)

// getRouterMetrics returns the singleton router metrics instance.
func getRouterMetrics() *routerMetrics {
	routerMetricsOnce.Do(func() {
		routerMetricsInstance = &routerMetrics{
			matchesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "avarouter",
					Subsystem: "router",
					Name:      "matches_total",
					Help:      "Total number of match calls by outcome",
				},
				[]string{"outcome"},
			),
			matchDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "avarouter",
					Subsystem: "router",
					Name:      "match_duration_seconds",
					Help:      "Route match duration in seconds",
					Buckets: []float64{
						1e-7, 2.5e-7, 5e-7, 1e-6, 2.5e-6,
						5e-6, 1e-5, 1e-4, 1e-3,
					},
				},
			),
			tableRoutes: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "avarouter",
					Subsystem: "router",
					Name:      "table_routes",
					Help:      "Number of routes in the active table",
				},
			),
			tableSwaps: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avarouter",
					Subsystem: "router",
					Name:      "table_swaps_total",
					Help:      "Total number of route table swaps",
				},
			),
		}
	})
	return routerMetricsInstance
}

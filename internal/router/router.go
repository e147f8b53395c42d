package router

import (
	"sync/atomic"
	"time"

	"github.com/vyrodovalexey/avarouter/internal/observability"
)

// Router serves lookups against an atomically swappable Table. The
// zero table is empty; Swap installs tables built off to the side, so
// in-flight Match calls always observe a complete, immutable table and
// never a half-built one.
type Router struct {
	table  atomic.Pointer[Table]
	logger observability.Logger
}

// Option is a functional option for configuring the router.
type Option func(*Router)

// WithLogger sets the logger for the router.
func WithLogger(logger observability.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// New creates a router holding an empty table.
func New(opts ...Option) *Router {
	r := &Router{logger: observability.NopLogger()}
	for _, opt := range opts {
		opt(r)
	}
	r.table.Store(NewBuilder().Finalize())
	return r
}

// Swap atomically installs a new table. Lookups already traversing the
// previous table complete against it; new lookups see the replacement.
func (r *Router) Swap(t *Table) {
	r.table.Swap(t)

	m := getRouterMetrics()
	m.tableRoutes.Set(float64(t.Len()))
	m.tableSwaps.Inc()

	r.logger.Info("route table swapped",
		observability.Int("routes", t.Len()),
	)
}

// Table returns the currently active table.
func (r *Router) Table() *Table {
	return r.table.Load()
}

// Match looks up the path in the active table and records hot-path
// metrics. See Table.Match for the matching contract.
func (r *Router) Match(path string) (MatchResult, bool) {
	m := getRouterMetrics()
	start := time.Now()

	result, ok := r.table.Load().Match(path)

	m.matchDuration.Observe(time.Since(start).Seconds())
	if ok {
		m.matchesTotal.WithLabelValues(outcomeMatched).Inc()
	} else {
		m.matchesTotal.WithLabelValues(outcomeUnmatched).Inc()
	}

	return result, ok
}

// Package metrics exposes Prometheus collectors for path searches.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/pathtrace/astar"
	"github.com/katalvlaran/pathtrace/gridpath"
)

// Result labels.
const (
	ResultFound     = "found"
	ResultNoPath    = "no_path"
	ResultOutside   = "start_outside"
	ResultLimit     = "limit"
	ResultCancelled = "cancelled"
	ResultError     = "error"
)

// Recorder holds the search collectors. A Recorder is bound to one
// registry; create it once per process (or per test).
type Recorder struct {
	searches *prometheus.CounterVec
	duration *prometheus.HistogramVec
	expanded prometheus.Histogram
	cost     prometheus.Histogram
	length   prometheus.Histogram
}

// New registers the collectors with reg. A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		// searches counts searches by operation and result
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pathtrace_search_total",
			Help: "Total path searches by operation and result",
		}, []string{"op", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathtrace_search_duration_seconds",
			Help:    "Path search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}, []string{"op"}),
		expanded: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathtrace_search_expanded_states",
			Help:    "Candidates expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12), // 1 to ~4M
		}),
		cost: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathtrace_route_cost",
			Help:    "Total cost of found routes",
			Buckets: prometheus.ExponentialBuckets(10, 2, 14),
		}),
		length: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathtrace_route_points",
			Help:    "Number of points in found routes",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
		}),
	}
}

// Classify maps a search error to its result label.
func Classify(err error) string {
	switch {
	case err == nil:
		return ResultFound
	case errors.Is(err, astar.ErrNoPath):
		return ResultNoPath
	case errors.Is(err, astar.ErrStartOutside):
		return ResultOutside
	case errors.Is(err, astar.ErrExpansionLimit):
		return ResultLimit
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCancelled
	default:
		return ResultError
	}
}

// Observe records one finished search. Route statistics are recorded only
// for found routes; Expanded is recorded for every outcome.
func (r *Recorder) Observe(op string, route gridpath.Route, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.searches.WithLabelValues(op, Classify(err)).Inc()
	r.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	r.expanded.Observe(float64(route.Expanded))
	if err == nil {
		r.cost.Observe(route.Cost)
		r.length.Observe(float64(len(route.Points)))
	}
}

// ObserveBatch records every outcome of a FindPaths call under op.
// elapsed is the batch wall time, recorded once.
func (r *Recorder) ObserveBatch(op string, outs []gridpath.Outcome, elapsed time.Duration) {
	if r == nil {
		return
	}
	for _, o := range outs {
		r.searches.WithLabelValues(op, Classify(o.Err)).Inc()
		r.expanded.Observe(float64(o.Route.Expanded))
		if o.Err == nil {
			r.cost.Observe(o.Route.Cost)
			r.length.Observe(float64(len(o.Route.Points)))
		}
	}
	r.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

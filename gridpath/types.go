// Package gridpath defines core types, options and sentinel errors for
// path-finding over an 8-connected grid of a scalar obstacle field.
package gridpath

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"

	"github.com/katalvlaran/pathtrace/astar"
)

// Sentinel errors for gridpath operations.
var (
	// ErrNilField indicates a nil obstacle field.
	ErrNilField = errors.New("gridpath: obstacle field is nil")
	// ErrNoPath indicates the goal is unreachable inside the field.
	// It wraps astar.ErrNoPath, so errors.Is matches either sentinel.
	ErrNoPath = fmt.Errorf("gridpath: no path between points: %w", astar.ErrNoPath)
	// ErrStartOutside indicates the start point lies outside the field.
	// It wraps astar.ErrStartOutside.
	ErrStartOutside = fmt.Errorf("gridpath: start point outside field: %w", astar.ErrStartOutside)
	// ErrBadCosts indicates a negative or non-finite cost parameter.
	ErrBadCosts = errors.New("gridpath: costs must be finite and non-negative")
	// ErrTooFewWaypoints indicates TraceWaypoints got fewer than two points.
	ErrTooFewWaypoints = errors.New("gridpath: at least two waypoints are required")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("gridpath: invalid option supplied")
)

// Point is an integer lattice coordinate; X is the column, Y the row.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// String formats p as "x,y".
func (p Point) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// Offsets are the 8 compass neighbor offsets in the order N, NE, E, SE, S, SW, W, NW
// (image coordinates: N is -Y).
var Offsets = [8]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Adjacent reports whether b is one of the 8 neighbors of a.
func Adjacent(a, b Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0)
}

// Costs holds the integer-unit cost convention of the grid adapter.
//
// Axis and Diagonal approximate 1:√2 in fixed point (10:14). HeuristicScale
// multiplies the Euclidean distance to the goal and must stay in the same
// unit as the step costs; changing one without the other changes the
// expansion order (not the correctness contract).
type Costs struct {
	Axis            float64 // cost of an N/E/S/W move
	Diagonal        float64 // cost of a NE/SE/SW/NW move
	ObstaclePenalty float64 // added when the destination field value is > 0
	HeuristicScale  float64 // multiplier of the Euclidean distance to the goal
}

// DefaultCosts returns {Axis: 10, Diagonal: 14, ObstaclePenalty: 100, HeuristicScale: 10}.
func DefaultCosts() Costs {
	return Costs{
		Axis:            10,
		Diagonal:        14,
		ObstaclePenalty: 100,
		HeuristicScale:  10,
	}
}

// Validate returns ErrBadCosts if any member is negative, NaN or infinite.
func (c Costs) Validate() error {
	fields := [...]struct {
		name string
		v    float64
	}{
		{"Axis", c.Axis},
		{"Diagonal", c.Diagonal},
		{"ObstaclePenalty", c.ObstaclePenalty},
		{"HeuristicScale", c.HeuristicScale},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrBadCosts, f.name, f.v)
		}
	}

	return nil
}

// Route is the result of a successful search: the ordered points from start
// to goal inclusive and the accumulated real cost.
type Route struct {
	Points   []Point `json:"points"`
	Cost     float64 `json:"cost"`
	Expanded int     `json:"expanded"`
}

// Valid reports whether Route is non-empty and every consecutive pair of
// points is a single 8-neighbor move.
func (r Route) Valid() bool {
	if len(r.Points) == 0 {
		return false
	}
	for i := 1; i < len(r.Points); i++ {
		if !Adjacent(r.Points[i-1], r.Points[i]) {
			return false
		}
	}

	return true
}

// Request names one independent search of a batch.
type Request struct {
	From Point `json:"from" yaml:"from"`
	To   Point `json:"to" yaml:"to"`
}

// Outcome pairs a Request with its Route or error.
type Outcome struct {
	Request Request
	Route   Route
	Err     error
}

// Option configures FindPath, FindPaths and TraceWaypoints.
type Option func(*Options)

// Options holds grid-level parameters.
type Options struct {
	// Costs is the cost convention; DefaultCosts() unless overridden.
	Costs Costs
	// Parallelism bounds concurrent searches in FindPaths; 0 means runtime.NumCPU().
	Parallelism int
	// Search options forwarded to astar.Search (caps, hooks, logger).
	Search []astar.Option
	// Logger receives Debug records for batch and waypoint progress.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns Options with DefaultCosts, NumCPU parallelism and a discard logger.
func DefaultOptions() Options {
	return Options{
		Costs:       DefaultCosts(),
		Parallelism: runtime.NumCPU(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithCosts overrides the cost convention. Invalid costs are reported as ErrBadCosts.
func WithCosts(c Costs) Option {
	return func(o *Options) {
		if err := c.Validate(); err != nil {
			o.err = err
			return
		}
		o.Costs = c
	}
}

// WithParallelism bounds concurrent searches in FindPaths.
//
//	n > 0: at most n searches at once
//	n == 0: runtime.NumCPU()
//	n < 0: invalid option → ErrOptionViolation
func WithParallelism(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: Parallelism cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.Parallelism = runtime.NumCPU()
		default:
			o.Parallelism = n
		}
	}
}

// WithSearchOptions forwards engine options (caps, hooks, logger) to every search.
func WithSearchOptions(opts ...astar.Option) Option {
	return func(o *Options) {
		o.Search = append(o.Search, opts...)
	}
}

// WithLogger sets the logger for gridpath and, through the engine, for each search.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
			o.Search = append(o.Search, astar.WithLogger(l))
		}
	}
}

func resolveOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg, cfg.err
}

package gridpath

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pathtrace/astar"
	"github.com/katalvlaran/pathtrace/field"
)

// FindPath searches the cheapest route from start to goal over obstacles.
//
// Behavior:
//  1. Bind a fresh Grid (own history buffer) to obstacles and goal.
//  2. Run astar.Search with the Grid as all five contracts.
//  3. Convert the terminal candidate into a Route.
//
// A goal outside the field is not rejected up front: the finite boundary lets
// the frontier drain and ErrNoPath is returned. Callers that want a fast
// failure should check field.InBounds(goal) first.
//
// Errors:
//   - ErrNilField, ErrBadCosts, ErrOptionViolation.
//   - ErrStartOutside (also matches astar.ErrStartOutside).
//   - ErrNoPath (also matches astar.ErrNoPath).
//   - astar.ErrExpansionLimit or a context error from forwarded search options.
//
// On error the returned Route carries only Expanded.
func FindPath(obstacles *field.Field, start, goal Point, opts ...Option) (Route, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return Route{}, err
	}

	return findPath(obstacles, start, goal, cfg, cfg.Search)
}

func findPath(obstacles *field.Field, start, goal Point, cfg Options, search []astar.Option) (Route, error) {
	g, err := NewGrid(obstacles, goal, cfg.Costs)
	if err != nil {
		return Route{}, err
	}

	res, err := astar.Search(g.Space(), start, goal, search...)
	route := Route{Expanded: res.Expanded}
	switch {
	case errors.Is(err, astar.ErrNoPath):
		return route, fmt.Errorf("%w: %v → %v", ErrNoPath, start, goal)
	case errors.Is(err, astar.ErrStartOutside):
		return route, fmt.Errorf("%w: %v", ErrStartOutside, start)
	case err != nil:
		return route, err
	}

	route.Points = res.Path.States()
	route.Cost = res.Path.Cost()

	return route, nil
}

// FindPaths runs independent searches over the same read-only field in
// parallel, at most Options.Parallelism at a time. Each search owns its Grid,
// frontier and history.
//
// Per-request failures are reported in Outcome.Err and do not stop the batch.
// Cancelling ctx abandons the remaining searches between expansions; the
// returned error is then ctx.Err().
// Outcomes are returned in request order.
func FindPaths(ctx context.Context, obstacles *field.Field, reqs []Request, opts ...Option) ([]Outcome, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if obstacles == nil {
		return nil, ErrNilField
	}

	out := make([]Outcome, len(reqs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Parallelism)
	for i, req := range reqs {
		eg.Go(func() error {
			search := append(append([]astar.Option(nil), cfg.Search...), astar.WithContext(egCtx))
			route, err := findPath(obstacles, req.From, req.To, cfg, search)
			out[i] = Outcome{Request: req, Route: route, Err: err}
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for _, o := range out {
		if o.Err != nil {
			failed++
		}
	}
	cfg.Logger.Debug("gridpath: batch finished",
		slog.Int("requests", len(reqs)),
		slog.Int("failed", failed),
		slog.Int("parallelism", cfg.Parallelism))

	return out, ctx.Err()
}

// TraceWaypoints routes through successive waypoints, as when a user clicks a
// polyline: each consecutive pair is searched independently and the segments
// are joined without repeating the shared waypoint. Costs and expansion
// counts are summed.
//
// Errors: ErrTooFewWaypoints, or the first segment error wrapped with its index.
func TraceWaypoints(obstacles *field.Field, waypoints []Point, opts ...Option) (Route, error) {
	if len(waypoints) < 2 {
		return Route{}, fmt.Errorf("%w: got %d", ErrTooFewWaypoints, len(waypoints))
	}
	cfg, err := resolveOptions(opts)
	if err != nil {
		return Route{}, err
	}

	var total Route
	for i := 1; i < len(waypoints); i++ {
		seg, err := findPath(obstacles, waypoints[i-1], waypoints[i], cfg, cfg.Search)
		total.Expanded += seg.Expanded
		if err != nil {
			return Route{Expanded: total.Expanded}, fmt.Errorf("gridpath: segment %d (%v → %v): %w", i-1, waypoints[i-1], waypoints[i], err)
		}
		pts := seg.Points
		if i > 1 {
			pts = pts[1:]
		}
		total.Points = append(total.Points, pts...)
		total.Cost += seg.Cost
		cfg.Logger.Debug("gridpath: segment traced",
			slog.Int("segment", i-1),
			slog.Float64("cost", seg.Cost),
			slog.Int("length", len(seg.Points)))
	}

	return total, nil
}

// Package gridpath binds the astar capability contracts to an 8-connected
// integer lattice over a scalar obstacle field.
//
// Cells with a field value > 0 are obstacles: entering one costs an extra
// ObstaclePenalty but is never forbidden, so a route always exists between
// two in-bounds points.
package gridpath

import (
	"math"

	"github.com/katalvlaran/pathtrace/astar"
	"github.com/katalvlaran/pathtrace/field"
)

// unvisited marks a history cell never reached. Scores are always >= 0.
const unvisited = -1

// Grid is the path-cost adapter bound to one obstacle field and one goal.
// It implements Boundary, Heuristic, StepCost, ChoiceGenerator and History
// over Point.
//
// The obstacle field is only read. The history buffer is owned by the Grid
// and mutated by the search, so a Grid serves exactly one search; build a
// new one per request.
type Grid struct {
	obstacles *field.Field
	history   *field.Field
	goal      Point
	costs     Costs
}

// Compile-time assertions for contract conformance.
var (
	_ astar.Boundary[Point]        = (*Grid)(nil)
	_ astar.Heuristic[Point]       = (*Grid)(nil)
	_ astar.StepCost[Point]        = (*Grid)(nil)
	_ astar.ChoiceGenerator[Point] = (*Grid)(nil)
	_ astar.History[Point]         = (*Grid)(nil)
)

// NewGrid binds obstacles and goal. It allocates a same-shaped history buffer
// initialized to "not visited".
// The goal is not required to lie inside the field.
//
// Errors: ErrNilField, ErrBadCosts.
// Complexity: O(W×H) time and memory.
func NewGrid(obstacles *field.Field, goal Point, costs Costs) (*Grid, error) {
	if obstacles == nil {
		return nil, ErrNilField
	}
	if err := costs.Validate(); err != nil {
		return nil, err
	}
	history, err := field.New(obstacles.Width(), obstacles.Height())
	if err != nil {
		return nil, err
	}
	if err = history.Fill(unvisited); err != nil {
		return nil, err
	}

	return &Grid{
		obstacles: obstacles,
		history:   history,
		goal:      goal,
		costs:     costs,
	}, nil
}

// Space returns the Grid as all five search contracts.
func (g *Grid) Space() astar.Space[Point] {
	return astar.Space[Point]{
		Boundary:  g,
		Heuristic: g,
		Cost:      g,
		Choices:   g,
		History:   g,
	}
}

// Goal returns the bound goal.
func (g *Grid) Goal() Point { return g.goal }

// Contains reports whether p lies in [0,W)×[0,H).
func (g *Grid) Contains(p Point) bool { return g.obstacles.InBounds(p.X, p.Y) }

// Estimate returns HeuristicScale × Euclidean distance from p to the goal.
func (g *Grid) Estimate(p Point) float64 {
	dx := float64(g.goal.X - p.X)
	dy := float64(g.goal.Y - p.Y)

	return g.costs.HeuristicScale * math.Hypot(dx, dy)
}

// Step prices a single move: Diagonal when both coordinates change, Axis
// otherwise, plus ObstaclePenalty when the destination cell value is > 0.
// to must lie inside the field.
func (g *Grid) Step(from, to Point) float64 {
	c := g.costs.Axis
	if from.X != to.X && from.Y != to.Y {
		c = g.costs.Diagonal
	}
	if g.obstacles.Value(to.X, to.Y) > 0 {
		c += g.costs.ObstaclePenalty
	}

	return c
}

// Choices returns the 8 neighbors of p, without bounds filtering.
func (g *Grid) Choices(p Point) []Point {
	out := make([]Point, len(Offsets))
	for i, d := range Offsets {
		out[i] = p.Add(d)
	}

	return out
}

// Visited returns the best score recorded for p, if any.
func (g *Grid) Visited(p Point) (float64, bool) {
	if !g.history.InBounds(p.X, p.Y) {
		return 0, false
	}
	v := g.history.Value(p.X, p.Y)
	if v == unvisited {
		return 0, false
	}

	return v, true
}

// Visit records score for p. Points outside the field are ignored.
// Any score is stored as given, non-finite ones included, so a state the
// engine recorded never reads back as unvisited.
func (g *Grid) Visit(p Point, score float64) {
	if !g.history.InBounds(p.X, p.Y) {
		return
	}
	g.history.Put(p.X, p.Y, score)
}

// Explored returns how many cells have a recorded score.
func (g *Grid) Explored() int {
	return g.history.Count(func(v float64) bool { return v != unvisited })
}

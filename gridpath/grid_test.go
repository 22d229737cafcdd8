package gridpath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathtrace/field"
	"github.com/katalvlaran/pathtrace/gridpath"
)

// emptyField returns a w×h all-zero field.
func emptyField(t testing.TB, w, h int) *field.Field {
	t.Helper()
	f, err := field.New(w, h)
	require.NoError(t, err)

	return f
}

// TestNewGrid_Errors verifies argument validation.
func TestNewGrid_Errors(t *testing.T) {
	_, err := gridpath.NewGrid(nil, gridpath.Point{}, gridpath.DefaultCosts())
	assert.ErrorIs(t, err, gridpath.ErrNilField)

	bad := gridpath.DefaultCosts()
	bad.Diagonal = -14
	_, err = gridpath.NewGrid(emptyField(t, 2, 2), gridpath.Point{}, bad)
	assert.ErrorIs(t, err, gridpath.ErrBadCosts)
	assert.Contains(t, err.Error(), "Diagonal")
}

// TestGrid_Contracts checks each contract on a 4×4 field with one obstacle at (2,1).
func TestGrid_Contracts(t *testing.T) {
	f := emptyField(t, 4, 4)
	require.NoError(t, f.Set(2, 1, 255))
	g, err := gridpath.NewGrid(f, gridpath.Point{X: 3, Y: 3}, gridpath.DefaultCosts())
	require.NoError(t, err)
	assert.Equal(t, gridpath.Point{X: 3, Y: 3}, g.Goal())

	t.Run("Boundary", func(t *testing.T) {
		assert.True(t, g.Contains(gridpath.Point{X: 0, Y: 0}))
		assert.True(t, g.Contains(gridpath.Point{X: 3, Y: 3}))
		assert.False(t, g.Contains(gridpath.Point{X: -1, Y: 0}))
		assert.False(t, g.Contains(gridpath.Point{X: 0, Y: 4}))
	})

	t.Run("Heuristic", func(t *testing.T) {
		// (0,-1) → (3,3) is a 3-4-5 triangle.
		assert.Equal(t, 50.0, g.Estimate(gridpath.Point{X: 0, Y: -1}))
		assert.Zero(t, g.Estimate(gridpath.Point{X: 3, Y: 3}))
	})

	t.Run("Step", func(t *testing.T) {
		o := gridpath.Point{X: 1, Y: 1}
		assert.Equal(t, 10.0, g.Step(o, gridpath.Point{X: 1, Y: 0}))
		assert.Equal(t, 14.0, g.Step(o, gridpath.Point{X: 0, Y: 0}))
		assert.Equal(t, 110.0, g.Step(o, gridpath.Point{X: 2, Y: 1}), "axis into obstacle")
		assert.Equal(t, 114.0, g.Step(gridpath.Point{X: 3, Y: 0}, gridpath.Point{X: 2, Y: 1}), "diagonal into obstacle")
		assert.Equal(t, 10.0, g.Step(gridpath.Point{X: 2, Y: 1}, gridpath.Point{X: 2, Y: 2}), "leaving an obstacle is free")
	})

	t.Run("Choices", func(t *testing.T) {
		got := g.Choices(gridpath.Point{X: 0, Y: 0})
		require.Len(t, got, 8)
		assert.Contains(t, got, gridpath.Point{X: -1, Y: -1}, "no bounds filtering")
		for _, c := range got {
			assert.True(t, gridpath.Adjacent(gridpath.Point{}, c))
		}
	})

	t.Run("History", func(t *testing.T) {
		p := gridpath.Point{X: 1, Y: 2}
		_, ok := g.Visited(p)
		assert.False(t, ok)
		g.Visit(p, 0)
		v, ok := g.Visited(p)
		assert.True(t, ok, "a zero score is a real visit")
		assert.Zero(t, v)
		g.Visit(p, 42.5)
		v, _ = g.Visited(p)
		assert.Equal(t, 42.5, v)
		_, ok = g.Visited(gridpath.Point{X: 9, Y: 9})
		assert.False(t, ok)
		assert.Equal(t, 1, g.Explored())
	})

	t.Run("HistoryNonFinite", func(t *testing.T) {
		// A non-finite score from a custom heuristic is still a visit.
		p := gridpath.Point{X: 0, Y: 3}
		g.Visit(p, math.Inf(1))
		v, ok := g.Visited(p)
		assert.True(t, ok)
		assert.True(t, math.IsInf(v, 1))

		assert.NotPanics(t, func() { g.Visit(gridpath.Point{X: -1, Y: 7}, 1) })
		assert.Equal(t, 2, g.Explored())
	})

	// The obstacle field itself is never written.
	assert.Equal(t, 1, f.Count(func(v float64) bool { return v != 0 }))
}

// TestAdjacentAndValid covers the route validity helpers.
func TestAdjacentAndValid(t *testing.T) {
	o := gridpath.Point{X: 5, Y: 5}
	for _, d := range gridpath.Offsets {
		assert.True(t, gridpath.Adjacent(o, o.Add(d)), "offset %v", d)
	}
	assert.False(t, gridpath.Adjacent(o, o))
	assert.False(t, gridpath.Adjacent(o, gridpath.Point{X: 7, Y: 5}))

	assert.False(t, gridpath.Route{}.Valid())
	assert.True(t, gridpath.Route{Points: []gridpath.Point{o}}.Valid())
	assert.False(t, gridpath.Route{Points: []gridpath.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}}.Valid())
	assert.Equal(t, "5,5", o.String())
}

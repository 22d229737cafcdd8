package astar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathtrace/astar"
)

// TestRoot verifies the singleton root candidate.
func TestRoot(t *testing.T) {
	p := astar.Root("S")
	assert.Equal(t, "S", p.Start())
	assert.Equal(t, "S", p.Endpoint())
	assert.Equal(t, 1, p.Len())
	assert.Zero(t, p.Cost())
	assert.Zero(t, p.Estimate())
	assert.Zero(t, p.Score())
}

// TestExtend_CostAccumulates checks that each extension adds exactly the step
// applied, with no drift over a long chain of fractional steps.
func TestExtend_CostAccumulates(t *testing.T) {
	p := astar.Root(0)
	want := 0.0
	for i := 1; i <= 1000; i++ {
		step := 0.1 * float64(i%7)
		parent := p.Cost()
		p = p.Extend(i, step, float64(1000-i))
		want += step
		require.Equal(t, parent+step, p.Cost(), "step %d", i)
	}
	assert.Equal(t, want, p.Cost())
	assert.Equal(t, 1001, p.Len())
	assert.Equal(t, 1000, p.Endpoint())
	assert.Zero(t, p.Estimate())
}

// TestExtend_DoesNotMutateParent checks that siblings never share storage.
func TestExtend_DoesNotMutateParent(t *testing.T) {
	root := astar.Root("S")
	a := root.Extend("A", 1, 9)
	b := root.Extend("B", 2, 8)
	aa := a.Extend("AA", 3, 7)
	ab := a.Extend("AB", 4, 6)

	assert.Equal(t, []string{"S"}, root.States())
	assert.Equal(t, []string{"S", "A"}, a.States())
	assert.Equal(t, []string{"S", "B"}, b.States())
	assert.Equal(t, []string{"S", "A", "AA"}, aa.States())
	assert.Equal(t, []string{"S", "A", "AB"}, ab.States())
	assert.Equal(t, 1.0, a.Cost())
	assert.Equal(t, 9.0, a.Estimate())
	assert.Equal(t, 10.0, a.Score())
	assert.Equal(t, 4.0, aa.Cost())
	assert.Equal(t, 5.0, ab.Cost())
}

// TestStates_ReturnsCopy ensures callers cannot corrupt a candidate through States.
func TestStates_ReturnsCopy(t *testing.T) {
	p := astar.Root(1).Extend(2, 1, 0)
	s := p.States()
	s[0] = 99
	assert.Equal(t, []int{1, 2}, p.States())
}

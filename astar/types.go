// Package astar defines the capability contracts, sentinel errors and the
// Space bundle consumed by the best-first search engine.
package astar

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the search engine.
var (
	// ErrNoPath indicates the frontier was exhausted before the goal was popped.
	ErrNoPath = errors.New("astar: no path to goal")

	// ErrStartOutside indicates the start state is rejected by the Boundary.
	ErrStartOutside = errors.New("astar: start state outside boundary")

	// ErrNilContract indicates one of the Space capability contracts is nil.
	ErrNilContract = errors.New("astar: capability contract is nil")

	// ErrExpansionLimit indicates the caller-imposed expansion cap was reached
	// before the search terminated. The search is abandoned, not failed.
	ErrExpansionLimit = errors.New("astar: expansion limit reached")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

// Boundary reports whether a state belongs to the searchable domain.
// The engine never extends a candidate into a state for which Contains is false.
type Boundary[T comparable] interface {
	Contains(state T) bool
}

// Heuristic estimates the remaining cost from a state to the (fixed) goal.
// It is not required to be admissible.
type Heuristic[T comparable] interface {
	Estimate(state T) float64
}

// StepCost returns the non-negative cost of moving directly between two adjacent states.
type StepCost[T comparable] interface {
	Step(from, to T) float64
}

// ChoiceGenerator yields the candidate successors of a state.
// Bounds are not its concern; the engine filters through Boundary.
type ChoiceGenerator[T comparable] interface {
	Choices(state T) []T
}

// History memoizes the best combined score (cost + estimate) a state has been reached with.
type History[T comparable] interface {
	// Visited returns the recorded score and true, or (0, false) if never visited.
	Visited(state T) (float64, bool)
	// Visit records score as the best known combined score for state.
	Visit(state T, score float64)
}

// BoundaryFunc adapts a plain function to the Boundary contract.
type BoundaryFunc[T comparable] func(state T) bool

// Contains calls f(state).
func (f BoundaryFunc[T]) Contains(state T) bool { return f(state) }

// HeuristicFunc adapts a plain function to the Heuristic contract.
type HeuristicFunc[T comparable] func(state T) float64

// Estimate calls f(state).
func (f HeuristicFunc[T]) Estimate(state T) float64 { return f(state) }

// StepCostFunc adapts a plain function to the StepCost contract.
type StepCostFunc[T comparable] func(from, to T) float64

// Step calls f(from, to).
func (f StepCostFunc[T]) Step(from, to T) float64 { return f(from, to) }

// ChoiceFunc adapts a plain function to the ChoiceGenerator contract.
type ChoiceFunc[T comparable] func(state T) []T

// Choices calls f(state).
func (f ChoiceFunc[T]) Choices(state T) []T { return f(state) }

// Space bundles the five capability contracts that parametrize one search.
// A single value may implement several contracts; gridpath.Grid implements all five.
//
// A Space must not be shared between concurrent searches: History is mutated
// during the search.
type Space[T comparable] struct {
	Boundary  Boundary[T]
	Heuristic Heuristic[T]
	Cost      StepCost[T]
	Choices   ChoiceGenerator[T]
	History   History[T]
}

// Validate reports ErrNilContract, naming the first missing member.
func (s Space[T]) Validate() error {
	switch {
	case s.Boundary == nil:
		return fmt.Errorf("%w: Boundary", ErrNilContract)
	case s.Heuristic == nil:
		return fmt.Errorf("%w: Heuristic", ErrNilContract)
	case s.Cost == nil:
		return fmt.Errorf("%w: Cost", ErrNilContract)
	case s.Choices == nil:
		return fmt.Errorf("%w: Choices", ErrNilContract)
	case s.History == nil:
		return fmt.Errorf("%w: History", ErrNilContract)
	}

	return nil
}

// MapHistory is a map-backed History for state types without a dense index.
// The zero value is not usable; call NewMapHistory.
type MapHistory[T comparable] struct {
	scores map[T]float64
}

// NewMapHistory returns an empty MapHistory.
func NewMapHistory[T comparable]() *MapHistory[T] {
	return &MapHistory[T]{scores: make(map[T]float64)}
}

// Visited implements History.
func (h *MapHistory[T]) Visited(state T) (float64, bool) {
	s, ok := h.scores[state]
	return s, ok
}

// Visit implements History.
func (h *MapHistory[T]) Visit(state T, score float64) { h.scores[state] = score }

// Len returns the number of states recorded so far.
func (h *MapHistory[T]) Len() int { return len(h.scores) }

// Compile-time assertion that MapHistory satisfies History.
var _ History[int] = (*MapHistory[int])(nil)

// Package astar implements a generic informed best-first (A*) search engine
// parametrized by pluggable capability contracts.
//
// What:
//
//   - Boundary decides which states are legal to expand.
//   - Heuristic estimates the remaining cost to the fixed goal.
//   - StepCost prices a move between adjacent states.
//   - ChoiceGenerator proposes successor states.
//   - History memoizes the best score each state was reached with.
//
// The engine knows nothing about what a state is beyond equality, so the same
// loop drives grid path-finding (see package gridpath) or any other domain.
//
// Candidate paths:
//
//	Path[T] is immutable once built. Extend copies the parent's states and
//	appends one, so frontier entries never alias each other.
//
// Frontier:
//
//	An indexed binary heap ordered by cost + estimate, ties broken by
//	insertion order. At most one live candidate exists per destination; when
//	a strictly better route to a queued state arrives, the old entry is
//	removed in O(log n).
//
// Heuristics:
//
//	Admissibility is not required. An overestimating heuristic turns the
//	search greedy: a path is still found when one exists inside the
//	boundary, but it is not guaranteed shortest.
//
// Concurrency:
//
//	A search is synchronous and single-threaded. Frontier and History are
//	private to one call; run independent searches with independent Spaces.
//
// Errors:
//
//   - ErrNoPath: frontier exhausted; the goal is unreachable.
//   - ErrStartOutside: the start state fails Boundary.
//   - ErrNilContract: a Space member is nil.
//   - ErrExpansionLimit: WithMaxExpansions fired.
//   - ErrOptionViolation: an invalid Option was supplied.
package astar

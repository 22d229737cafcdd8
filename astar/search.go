package astar

// Search runs the best-first expansion loop from start until the goal is
// popped or the frontier is exhausted.
//
// Behavior:
//  1. Seed the frontier with Root(start); record it in History.
//  2. Pop the lowest cost+estimate candidate p (ties: first inserted wins).
//  3. If p ends at goal, return it.
//  4. Otherwise extend p into every choice c with Boundary.Contains(c) and
//     keep the extension only if it strictly improves the score recorded for c,
//     evicting the previous live candidate for c.
//  5. Repeat; an empty frontier yields ErrNoPath.
//
// The engine has no internal safety limit. With an unbounded Boundary and an
// unreachable goal it does not terminate unless the caller supplies
// WithMaxExpansions or WithContext.
//
// Errors:
//   - ErrNilContract, ErrOptionViolation, ErrStartOutside (before the loop).
//   - ErrNoPath when the frontier is exhausted.
//   - ErrExpansionLimit or a wrapped context error when a caller cap fires.
//
// On error Result.Path is nil but the counters describe the work done.
//
// Complexity: O(E·(L + log F)) time, where E is the number of extensions,
// L the path length copied per Extend and F the frontier size.
func Search[T comparable](space Space[T], start, goal T, opts ...Option) (Result[T], error) {
	s, err := NewStepper(space, start, goal, opts...)
	if err != nil {
		return Result[T]{}, err
	}
	for !s.Done() {
		if _, err = s.Step(); err != nil {
			break
		}
	}

	return s.Result()
}

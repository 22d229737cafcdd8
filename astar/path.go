package astar

// Path is a candidate path: an immutable partial route from the start state
// to its endpoint, together with its accumulated real cost and the heuristic
// estimate taken at the endpoint.
//
// Invariants:
//   - states is never empty; states[len-1] is the endpoint.
//   - cost equals the sum of the step costs applied by successive Extend calls.
//   - a Path is never mutated once built; Extend returns a fresh copy.
type Path[T comparable] struct {
	states   []T
	cost     float64
	estimate float64
}

// Root returns the singleton candidate holding only start, with cost 0 and no estimate.
func Root[T comparable](start T) *Path[T] {
	return &Path[T]{states: []T{start}}
}

// Extend returns a new candidate whose states are p's states plus next.
// The new cost is p.Cost()+step; the estimate is replaced by estimate.
// p itself is left untouched.
// Complexity: O(len(p)) time and memory.
func (p *Path[T]) Extend(next T, step, estimate float64) *Path[T] {
	states := make([]T, len(p.states)+1)
	copy(states, p.states)
	states[len(p.states)] = next

	return &Path[T]{
		states:   states,
		cost:     p.cost + step,
		estimate: estimate,
	}
}

// Endpoint returns the last state of the path.
func (p *Path[T]) Endpoint() T { return p.states[len(p.states)-1] }

// Start returns the first state of the path.
func (p *Path[T]) Start() T { return p.states[0] }

// Cost returns the accumulated real cost.
func (p *Path[T]) Cost() float64 { return p.cost }

// Estimate returns the heuristic estimate at the endpoint.
func (p *Path[T]) Estimate() float64 { return p.estimate }

// Score returns Cost()+Estimate(), the frontier priority.
func (p *Path[T]) Score() float64 { return p.cost + p.estimate }

// Len returns the number of states on the path (>= 1).
func (p *Path[T]) Len() int { return len(p.states) }

// States returns a copy of the ordered states, start first.
func (p *Path[T]) States() []T {
	out := make([]T, len(p.states))
	copy(out, p.states)

	return out
}

package astar

import (
	"fmt"
	"log/slog"
)

// Snapshot exposes the state of the search after one Step.
type Snapshot[T comparable] struct {
	Current   T       // endpoint of the candidate popped by this step
	Score     float64 // its cost + estimate
	Frontier  int     // live candidates remaining after relaxation
	StepIndex int     // 1-based number of pops so far
	Done      bool
	Found     bool
}

// Result is the outcome of a terminated search.
type Result[T comparable] struct {
	// Path is the terminal candidate; nil unless the goal was reached.
	Path *Path[T]

	Expanded  int // candidates popped from the frontier
	Enqueued  int // candidates inserted into the frontier, root included
	Replaced  int // live frontier entries removed because a strictly better route arrived
	Discarded int // candidates rejected by the history filter
}

// Stepper runs the expansion loop one pop at a time. It lets UIs and
// debugging tools observe the frontier, and lets callers impose their own
// iteration or wall-clock cap around the loop.
//
// A Stepper is not safe for concurrent use.
type Stepper[T comparable] struct {
	space Space[T]
	goal  T
	opts  Options
	hooks Hooks[T]
	log   *slog.Logger

	open   *frontier[T]
	result Result[T]
	done   bool
	err    error
}

// NewStepper validates the inputs and seeds the frontier with the root candidate.
//
// Errors:
//   - ErrNilContract if a Space member is nil.
//   - ErrOptionViolation if an option is invalid.
//   - ErrStartOutside if space.Boundary rejects start.
func NewStepper[T comparable](space Space[T], start, goal T, opts ...Option) (*Stepper[T], error) {
	if err := space.Validate(); err != nil {
		return nil, err
	}
	cfg, hooks, err := resolveOptions[T](opts)
	if err != nil {
		return nil, err
	}
	if !space.Boundary.Contains(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartOutside, start)
	}

	s := &Stepper[T]{
		space: space,
		goal:  goal,
		opts:  cfg,
		hooks: hooks,
		log:   cfg.Logger,
		open:  newFrontier[T](),
	}

	root := Root(start)
	space.History.Visit(start, root.Score())
	s.enqueue(root)

	return s, nil
}

// Done reports whether the search has terminated.
func (s *Stepper[T]) Done() bool { return s.done }

// Result returns the counters gathered so far and, once the goal was reached, the path.
// The error is the termination cause, nil while running or on success.
func (s *Stepper[T]) Result() (Result[T], error) { return s.result, s.err }

// Frontier returns the endpoints of the live candidates, in heap order.
func (s *Stepper[T]) Frontier() []T { return s.open.endpoints() }

// Live returns the live frontier candidate ending at state, if any.
func (s *Stepper[T]) Live(state T) (*Path[T], bool) { return s.open.live(state) }

// Step pops the lowest-score candidate and either terminates on the goal or
// relaxes its choices. Calling Step after termination returns the final
// snapshot and the termination error again.
func (s *Stepper[T]) Step() (Snapshot[T], error) {
	if s.done {
		return s.snapshot(), s.err
	}
	if err := s.opts.Ctx.Err(); err != nil {
		return s.terminate(fmt.Errorf("astar: search abandoned: %w", err))
	}
	if s.open.Len() == 0 {
		return s.terminate(ErrNoPath)
	}
	if s.opts.MaxExpansions > 0 && s.result.Expanded >= s.opts.MaxExpansions {
		return s.terminate(fmt.Errorf("%w: %d", ErrExpansionLimit, s.opts.MaxExpansions))
	}

	p := s.open.pop()
	s.result.Expanded++
	if s.hooks.OnExpand != nil {
		s.hooks.OnExpand(p)
	}

	snap := Snapshot[T]{
		Current:   p.Endpoint(),
		Score:     p.Score(),
		StepIndex: s.result.Expanded,
	}

	// Termination is checked on pop only, so start == goal still costs one cycle.
	if p.Endpoint() == s.goal {
		s.done = true
		s.result.Path = p
		s.log.Debug("astar: goal reached",
			slog.Any("goal", s.goal),
			slog.Float64("cost", p.Cost()),
			slog.Int("length", p.Len()),
			slog.Int("expanded", s.result.Expanded))
		snap.Frontier = s.open.Len()
		snap.Done, snap.Found = true, true

		return snap, nil
	}

	s.relax(p)
	snap.Frontier = s.open.Len()

	return snap, nil
}

// relax extends p into every in-bounds choice and applies the history filter:
// never visited → record and enqueue; strictly better than recorded → drop the
// live entry, record and enqueue; otherwise discard.
func (s *Stepper[T]) relax(p *Path[T]) {
	from := p.Endpoint()
	for _, c := range s.space.Choices.Choices(from) {
		if !s.space.Boundary.Contains(c) {
			continue
		}
		q := p.Extend(c, s.space.Cost.Step(from, c), s.space.Heuristic.Estimate(c))

		recorded, seen := s.space.History.Visited(c)
		switch {
		case !seen:
			s.space.History.Visit(c, q.Score())
			s.enqueue(q)
		case recorded > q.Score():
			if s.open.remove(c) {
				s.result.Replaced++
			}
			s.space.History.Visit(c, q.Score())
			s.enqueue(q)
		default:
			s.result.Discarded++
			if s.hooks.OnDiscard != nil {
				s.hooks.OnDiscard(q)
			}
		}
	}
}

func (s *Stepper[T]) enqueue(p *Path[T]) {
	s.open.push(p)
	s.result.Enqueued++
	if s.hooks.OnEnqueue != nil {
		s.hooks.OnEnqueue(p)
	}
}

func (s *Stepper[T]) terminate(err error) (Snapshot[T], error) {
	s.done = true
	s.err = err
	s.log.Debug("astar: search terminated without reaching goal",
		slog.Any("goal", s.goal),
		slog.Int("expanded", s.result.Expanded),
		slog.String("cause", err.Error()))

	return s.snapshot(), err
}

func (s *Stepper[T]) snapshot() Snapshot[T] {
	snap := Snapshot[T]{
		Frontier:  s.open.Len(),
		StepIndex: s.result.Expanded,
		Done:      s.done,
		Found:     s.result.Path != nil,
	}
	if s.result.Path != nil {
		snap.Current = s.result.Path.Endpoint()
		snap.Score = s.result.Path.Score()
	}

	return snap
}

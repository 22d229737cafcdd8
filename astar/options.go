package astar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Option configures a search via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation
// when Search or NewStepper is invoked.
type Option func(*Options)

// Options holds the caller-imposed caps and observers of one search.
// None of them changes the expansion order.
type Options struct {
	// Ctx is checked between expansions. The engine itself never blocks.
	Ctx context.Context

	// MaxExpansions, if > 0, abandons the search with ErrExpansionLimit
	// once that many candidates have been popped without reaching the goal.
	MaxExpansions int

	// Logger receives Debug records for termination events.
	Logger *slog.Logger

	// hooks holds a Hooks[T]; typed at Search time.
	hooks any

	// internal error recorded during option parsing
	err error
}

// Hooks observes the expansion loop. Nil members are skipped.
type Hooks[T comparable] struct {
	// OnExpand is called for each popped candidate, before the goal check.
	OnExpand func(p *Path[T])
	// OnEnqueue is called for each candidate inserted into the frontier,
	// including replacements of a dominated live entry.
	OnEnqueue func(p *Path[T])
	// OnDiscard is called for each candidate dropped by the history filter.
	OnDiscard func(p *Path[T])
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - no expansion cap (MaxExpansions == 0)
//   - a logger that discards everything
//   - no hooks
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		MaxExpansions: 0,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithContext sets a context checked between expansions.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxExpansions caps the number of pops.
//
//	n > 0: abandon after n pops
//	n == 0: explicit no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithLogger routes engine debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithHooks registers expansion observers. The state type of h must match
// the state type of the search, otherwise ErrOptionViolation is reported.
func WithHooks[T comparable](h Hooks[T]) Option {
	return func(o *Options) {
		o.hooks = h
	}
}

// resolveOptions applies opts over DefaultOptions and extracts typed hooks.
func resolveOptions[T comparable](opts []Option) (Options, Hooks[T], error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return cfg, Hooks[T]{}, cfg.err
	}

	var hooks Hooks[T]
	if cfg.hooks != nil {
		h, ok := cfg.hooks.(Hooks[T])
		if !ok {
			return cfg, Hooks[T]{}, fmt.Errorf("%w: hooks state type %T does not match search", ErrOptionViolation, cfg.hooks)
		}
		hooks = h
	}

	return cfg, hooks, nil
}

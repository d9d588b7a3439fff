// Package compare provides tunable options and error definitions
// for structural comparison of meshes, curves and lattices.
package compare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/geocmp/bijection"
)

// Sentinel errors. A mismatch is never an error; these report caller faults.
var (
	// ErrNilGeometry is returned when either input is nil.
	ErrNilGeometry = errors.New("compare: geometry is nil")

	// ErrBadThreshold is returned for a negative or NaN threshold.
	ErrBadThreshold = errors.New("compare: threshold must be a non-negative number")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("compare: invalid option supplied")
)

// Option configures a comparison via functional arguments.
// If an Option is invalid (e.g. negative worker count), it is recorded
// internally and surfaced as ErrOptionViolation when the comparison runs.
type Option func(*Options)

// Options holds the parameters of one comparison call.
type Options struct {
	// Ctx allows cancellation between refinement and propagation rounds.
	Ctx context.Context

	// Workers bounds the goroutines of one round; 0 means GOMAXPROCS.
	Workers int

	// MaxRounds caps refinement and propagation rounds; 0 means no cap
	// beyond the element count.
	MaxRounds int

	// MaxBacktrack caps backtracks when symmetric elements cannot be told
	// apart. A first choice is free, so interchangeable copies cost
	// nothing; 0 disables individualization.
	MaxBacktrack int

	// Logger receives debug records per stage and per mismatch.
	Logger *slog.Logger

	// FlippedFaces accepts faces whose winding is reversed.
	FlippedFaces bool

	// ReversedCurves accepts curves traversed in the opposite direction.
	ReversedCurves bool

	// Relative switches the threshold to a fraction of the larger magnitude.
	Relative bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - context.Background()
//   - GOMAXPROCS workers, no extra round cap
//   - bijection.DefaultMaxBacktrack backtracks
//   - a logger that discards everything
//   - strict face winding, reversed curves accepted
//   - absolute threshold
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		Workers:        0,
		MaxRounds:      0,
		MaxBacktrack:   bijection.DefaultMaxBacktrack,
		Logger:         slog.New(slog.DiscardHandler),
		FlippedFaces:   false,
		ReversedCurves: true,
		Relative:       false,
		err:            nil,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithWorkers bounds per-round parallelism.
//
//	n > 0: at most n goroutines
//	n == 0: GOMAXPROCS
//	n < 0: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithMaxRounds caps refinement and propagation rounds (0 = no extra cap).
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxRounds cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxRounds = n
	}
}

// WithMaxBacktrack caps individualization backtracks (0 = propagation only).
func WithMaxBacktrack(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxBacktrack cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxBacktrack = n
	}
}

// WithLogger routes debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithFlippedFaces accepts faces whose corner loop is reversed.
func WithFlippedFaces(allow bool) Option {
	return func(o *Options) {
		o.FlippedFaces = allow
	}
}

// WithReversedCurves accepts curves whose point order is reversed.
func WithReversedCurves(allow bool) Option {
	return func(o *Options) {
		o.ReversedCurves = allow
	}
}

// WithRelativeTolerance interprets the threshold as a fraction of the
// larger magnitude of each compared pair. The threshold must then be < 1.
func WithRelativeTolerance() Option {
	return func(o *Options) {
		o.Relative = true
	}
}

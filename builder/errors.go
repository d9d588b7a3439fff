// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Context is attached with builderErrorf, which wraps via %w.
//   • Validation panics are confined to option constructors (WithX...).
//
// Priority when several validations fail:
//   • ErrBadSize:         sizes first (rows, cols, points, resolution).
//   • ErrIndex:           then element indices and axes.
//   • ErrBadPermutation:  then caller-provided permutations.
//   • ErrNeedRandSource:  then RNG presence for Shuffle* variants.
//   • ErrConstructFailed: a lower-level container rejected the result.

package builder

import (
	"errors"
	"fmt"
)

// ErrBadSize indicates a size parameter below the constructor minimum.
var ErrBadSize = errors.New("builder: invalid size")

// ErrIndex indicates an element index or axis out of range.
var ErrIndex = errors.New("builder: index out of range")

// ErrBadPermutation indicates a slice that is not a permutation of 0..n-1.
var ErrBadPermutation = errors.New("builder: not a permutation")

// ErrNeedRandSource indicates a randomized variant called without WithSeed
// or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that a container constructor rejected the
// generated data.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrOptionViolation indicates a meaningless parameter that cannot be caught
// in an option constructor, such as an unknown PlatonicName.
var ErrOptionViolation = errors.New("builder: invalid option value")

// builderErrorf wraps sentinel with the method context and a formatted
// detail: "<Method>: <detail>: <sentinel text>".
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}

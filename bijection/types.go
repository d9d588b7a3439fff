package bijection

import (
	"errors"
	"fmt"
)

// ErrShape is returned when colors and adjacency disagree on element counts.
var ErrShape = errors.New("bijection: colors and adjacency sizes differ")

// DefaultMaxBacktrack bounds backtracks when the caller does not choose a
// limit.
const DefaultMaxBacktrack = 64

// Outcome classifies the result of Resolve.
type Outcome uint8

const (
	// Resolved means Mapping is a complete bijection preserving colors and
	// labeled adjacency.
	Resolved Outcome = iota

	// Conflict means no bijection exists that is compatible with the colors.
	Conflict

	// Ambiguous means the candidates could not be narrowed to one choice
	// within the individualization budget.
	Ambiguous

	// Inconsistent means a complete mapping was found that breaks adjacency.
	Inconsistent

	// Rejected means every complete mapping reached was refused by
	// Options.Complete.
	Rejected
)

// String returns the lower-case name of o.
func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Conflict:
		return "conflict"
	case Ambiguous:
		return "ambiguous"
	case Inconsistent:
		return "inconsistent"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Options tunes Resolve.
//   - Workers:      goroutines per propagation round (<= 0 means GOMAXPROCS).
//   - MaxRounds:    propagation rounds per fixed point (<= 0 means n + 1).
//   - MaxBacktrack: total backtracks. The first choice at every pivot is
//     free; each further choice costs one. 0 disables individualization,
//     negative means DefaultMaxBacktrack.
//   - Accept:       optional pair filter; a is never mapped onto b when it
//     returns false. Called concurrently.
//   - Complete:     optional check of every complete, adjacency-preserving
//     mapping; false backtracks as if the last choice had failed.
type Options struct {
	Workers      int
	MaxRounds    int
	MaxBacktrack int
	Accept       func(a, b int) bool
	Complete     func(fwd []int) bool
}

// Mapping is a partial or complete correspondence; -1 marks unresolved.
type Mapping struct {
	Forward  []int // A element → B element
	Backward []int // B element → A element
}

// NewMapping returns an empty mapping over n elements on each side.
func NewMapping(n int) Mapping {
	m := Mapping{Forward: make([]int, n), Backward: make([]int, n)}
	for i := 0; i < n; i++ {
		m.Forward[i] = -1
		m.Backward[i] = -1
	}
	return m
}

// Identity returns the mapping i → i.
func Identity(n int) Mapping {
	m := Mapping{Forward: make([]int, n), Backward: make([]int, n)}
	for i := 0; i < n; i++ {
		m.Forward[i] = i
		m.Backward[i] = i
	}
	return m
}

// Len is the number of elements per side.
func (m Mapping) Len() int { return len(m.Forward) }

// Complete reports whether every element is mapped.
func (m Mapping) Complete() bool {
	for _, b := range m.Forward {
		if b < 0 {
			return false
		}
	}
	return true
}

// Result reports the outcome of Resolve.
type Result struct {
	Mapping
	Outcome Outcome

	// Source is the A element where a Conflict or Ambiguous outcome was
	// detected, or the first element with broken adjacency for
	// Inconsistent; -1 when Resolved or Rejected.
	Source int

	// Rounds counts propagation rounds over all attempts.
	Rounds int

	// Trials counts backtracks: choices tried after a pivot's first.
	Trials int
}

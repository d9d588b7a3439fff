package tolerance

import (
	"math"

	"github.com/golang/geo/r3"
)

// Mode selects how a threshold is applied.
type Mode uint8

const (
	// Absolute compares |a-b| against the threshold itself.
	Absolute Mode = iota
	// Relative scales the threshold by the larger magnitude of the two values.
	Relative
)

// String returns a readable mode name.
func (m Mode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return "unknown"
	}
}

// Tolerance is an immutable comparison policy for one comparison call.
type Tolerance struct {
	Threshold float64
	Mode      Mode
}

// Exact is the zero-threshold absolute tolerance used for integer-like data.
var Exact = Tolerance{}

// Abs returns an absolute tolerance with threshold t.
func Abs(t float64) Tolerance {
	return Tolerance{Threshold: t, Mode: Absolute}
}

// Equal reports whether |a-b| <= threshold (inclusive). NaN is never equal.
func Equal(a, b, threshold float64) bool {
	return math.Abs(a-b) <= threshold
}

// EqualVec compares two positions componentwise.
func EqualVec(a, b r3.Vector, threshold float64) bool {
	return Equal(a.X, b.X, threshold) &&
		Equal(a.Y, b.Y, threshold) &&
		Equal(a.Z, b.Z, threshold)
}

// EqualColor compares two RGBA colors componentwise.
func EqualColor(a, b [4]float64, threshold float64) bool {
	for i := range a {
		if !Equal(a[i], b[i], threshold) {
			return false
		}
	}
	return true
}

// EqualSlice compares two equally sized component slices.
// Slices of different length are never equal.
func EqualSlice(a, b []float64, threshold float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i], threshold) {
			return false
		}
	}
	return true
}

// Equal applies the tolerance to a pair of scalars.
func (t Tolerance) Equal(a, b float64) bool {
	if t.Mode == Relative {
		return math.Abs(a-b) <= t.Threshold*math.Max(math.Abs(a), math.Abs(b))
	}
	return Equal(a, b, t.Threshold)
}

// EqualSlice applies the tolerance componentwise.
func (t Tolerance) EqualSlice(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !t.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualVec applies the tolerance to each component of two positions.
func (t Tolerance) EqualVec(a, b r3.Vector) bool {
	return t.Equal(a.X, b.X) && t.Equal(a.Y, b.Y) && t.Equal(a.Z, b.Z)
}

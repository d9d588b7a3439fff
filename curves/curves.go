// Package curves provides a curve network container: control points grouped
// into curves by offsets, with generic point and curve attributes and an
// optional custom knot vector per curve.
//
// Curve-level settings (cyclic flag, curve type, handle types, NURBS order,
// knots mode) are ordinary attributes under the well-known names declared
// in package attribute. Curves satisfies compare.CurvesSource.
package curves

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/attribute"
)

// Sentinel errors for curve construction.
var (
	// ErrEmptyCurve indicates a curve without points.
	ErrEmptyCurve = errors.New("curves: curve has no points")

	// ErrPointCount indicates curve sizes that do not add up to the point count.
	ErrPointCount = errors.New("curves: curve sizes do not match point count")

	// ErrCurveIndex indicates a curve index out of range.
	ErrCurveIndex = errors.New("curves: curve index out of range")

	// ErrDomain indicates an attribute on a domain curves do not store.
	ErrDomain = errors.New("curves: unsupported attribute domain")
)

// Curves is a set of curves over a shared point array.
type Curves struct {
	offsets   []int
	positions []r3.Vector
	knots     [][]float64
	attrs     *attribute.Set
}

// New groups positions into consecutive curves of the given sizes.
func New(positions []r3.Vector, sizes []int) (*Curves, error) {
	offsets := make([]int, 1, len(sizes)+1)
	for i, s := range sizes {
		if s < 1 {
			return nil, fmt.Errorf("%w: curve %d", ErrEmptyCurve, i)
		}
		offsets = append(offsets, offsets[i]+s)
	}
	if offsets[len(sizes)] != len(positions) {
		return nil, fmt.Errorf("%w: sizes sum to %d, have %d points", ErrPointCount, offsets[len(sizes)], len(positions))
	}

	return &Curves{
		offsets:   offsets,
		positions: append([]r3.Vector(nil), positions...),
		knots:     make([][]float64, len(sizes)),
		attrs:     attribute.NewSet(),
	}, nil
}

// PointCount returns the total number of control points.
func (c *Curves) PointCount() int { return len(c.positions) }

// CurveCount returns the number of curves.
func (c *Curves) CurveCount() int { return len(c.offsets) - 1 }

// PointRange returns the first point and point count of curve i.
func (c *Curves) PointRange(i int) (start, size int) {
	return c.offsets[i], c.offsets[i+1] - c.offsets[i]
}

// Position returns the position of point p.
func (c *Curves) Position(p int) r3.Vector { return c.positions[p] }

// Cyclic reports whether curve i is closed, from the "cyclic" curve attribute.
func (c *Curves) Cyclic(i int) bool {
	a, ok := c.attrs.Lookup(attribute.Curve, attribute.Cyclic)
	return ok && a.Value(i)[0] != 0
}

// CustomKnots returns the custom knot vector of curve i, or nil.
func (c *Curves) CustomKnots(i int) []float64 { return c.knots[i] }

// Attributes returns the attribute set (read-only for callers).
func (c *Curves) Attributes() *attribute.Set { return c.attrs }

// Positions returns a copy of all point positions.
func (c *Curves) Positions() []r3.Vector {
	return append([]r3.Vector(nil), c.positions...)
}

// Sizes returns the point count of every curve.
func (c *Curves) Sizes() []int {
	out := make([]int, c.CurveCount())
	for i := range out {
		_, out[i] = c.PointRange(i)
	}
	return out
}

// SetCustomKnots stores a copy of a custom knot vector for curve i.
func (c *Curves) SetCustomKnots(i int, knots []float64) error {
	if i < 0 || i >= c.CurveCount() {
		return fmt.Errorf("%w: %d", ErrCurveIndex, i)
	}
	c.knots[i] = append([]float64(nil), knots...)
	return nil
}

// SetAttribute adds attr after checking its domain and element count.
func (c *Curves) SetAttribute(attr *attribute.Attribute) error {
	var size int
	switch attr.Domain {
	case attribute.Point:
		size = c.PointCount()
	case attribute.Curve:
		size = c.CurveCount()
	default:
		return fmt.Errorf("%w: %s", ErrDomain, attr.Domain)
	}
	if attr.Len() != size {
		return fmt.Errorf("%w: %s/%s has %d elements, want %d",
			attribute.ErrDomainSize, attr.Domain, attr.Name, attr.Len(), size)
	}
	return c.attrs.Add(attr)
}

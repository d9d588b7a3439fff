// Package lattice provides a deformation-lattice container: a U×V×W grid of
// control points with positions and weights, plus the grid index math the
// comparator uses to derive implicit point adjacency.
//
// Points are stored U-fastest: index = u + v·U + w·U·V.
//
// Errors:
//
//   - ErrBadResolution: a resolution axis is smaller than one.
//   - ErrPointCount:    positions or weights do not have U·V·W entries.
package lattice

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

// Sentinel errors for lattice construction.
var (
	// ErrBadResolution indicates a non-positive resolution along some axis.
	ErrBadResolution = errors.New("lattice: resolution must be at least 1 on every axis")

	// ErrPointCount indicates per-point data of the wrong length.
	ErrPointCount = errors.New("lattice: point data does not match resolution")
)

// Resolution is the point count along the U, V and W axes.
type Resolution [3]int

// Valid reports whether every axis has at least one point.
func (r Resolution) Valid() bool {
	return r[0] >= 1 && r[1] >= 1 && r[2] >= 1
}

// Points is the total number of grid points.
func (r Resolution) Points() int {
	return r[0] * r[1] * r[2]
}

// Index maps grid coordinates to a flat point index.
// Complexity: O(1).
func (r Resolution) Index(c [3]int) int {
	return c[0] + c[1]*r[0] + c[2]*r[0]*r[1]
}

// Coordinate converts a flat point index back to grid coordinates.
// Complexity: O(1).
func (r Resolution) Coordinate(i int) [3]int {
	return [3]int{i % r[0], (i / r[0]) % r[1], i / (r[0] * r[1])}
}

// InBounds reports whether c lies inside the grid.
func (r Resolution) InBounds(c [3]int) bool {
	for k := 0; k < 3; k++ {
		if c[k] < 0 || c[k] >= r[k] {
			return false
		}
	}
	return true
}

// axisOffsets are the six face-neighbor steps, two per axis.
var axisOffsets = [6]struct {
	axis int
	step [3]int
}{
	{0, [3]int{-1, 0, 0}}, {0, [3]int{1, 0, 0}},
	{1, [3]int{0, -1, 0}}, {1, [3]int{0, 1, 0}},
	{2, [3]int{0, 0, -1}}, {2, [3]int{0, 0, 1}},
}

// EachNeighbor calls fn for every in-bounds axis neighbor of point i.
// Neighbors are visited in a fixed order: -U, +U, -V, +V, -W, +W.
func (r Resolution) EachNeighbor(i int, fn func(j, axis int)) {
	c := r.Coordinate(i)
	for _, off := range axisOffsets {
		n := [3]int{c[0] + off.step[0], c[1] + off.step[1], c[2] + off.step[2]}
		if r.InBounds(n) {
			fn(r.Index(n), off.axis)
		}
	}
}

// Lattice is an immutable grid of weighted control points.
type Lattice struct {
	res       Resolution
	positions []r3.Vector
	weights   []float64
}

// New builds a lattice. A nil weights slice means every weight is 1.
func New(res Resolution, positions []r3.Vector, weights []float64) (*Lattice, error) {
	if !res.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrBadResolution, res)
	}
	n := res.Points()
	if len(positions) != n {
		return nil, fmt.Errorf("%w: %d positions for %d points", ErrPointCount, len(positions), n)
	}
	w := make([]float64, n)
	if weights == nil {
		for i := range w {
			w[i] = 1
		}
	} else {
		if len(weights) != n {
			return nil, fmt.Errorf("%w: %d weights for %d points", ErrPointCount, len(weights), n)
		}
		copy(w, weights)
	}

	return &Lattice{
		res:       res,
		positions: append([]r3.Vector(nil), positions...),
		weights:   w,
	}, nil
}

// Resolution returns the U, V and W point counts.
func (l *Lattice) Resolution() (u, v, w int) {
	return l.res[0], l.res[1], l.res[2]
}

// Position returns the position of point p.
func (l *Lattice) Position(p int) r3.Vector { return l.positions[p] }

// Weight returns the weight of point p.
func (l *Lattice) Weight(p int) float64 { return l.weights[p] }

// Positions returns a copy of all point positions.
func (l *Lattice) Positions() []r3.Vector {
	return append([]r3.Vector(nil), l.positions...)
}

// Weights returns a copy of all point weights.
func (l *Lattice) Weights() []float64 {
	return append([]float64(nil), l.weights...)
}

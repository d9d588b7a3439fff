// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// lattice.go — regular lattice fixtures.

package builder

import (
	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/lattice"
)

// Box builds a u×v×w lattice whose points evenly span [-1,1] on every axis
// with more than one point; single-point axes sit at 0. Weights are 1, or
// 1 + 0.25*((cu+2cv+3cw) mod 4) with WithAttributes.
//
// Errors: ErrBadSize if any axis is below MinLatticeAxis.
func Box(u, v, w int, opts ...BuilderOption) (*lattice.Lattice, error) {
	res := lattice.Resolution{u, v, w}
	if u < MinLatticeAxis || v < MinLatticeAxis || w < MinLatticeAxis {
		return nil, builderErrorf(MethodBox, ErrBadSize, "resolution=%v", res)
	}
	cfg := newBuilderConfig(opts...)
	span := func(c, n int) float64 {
		if n == 1 {
			return 0
		}
		return -1 + 2*float64(c)/float64(n-1)
	}
	n := res.Points()
	pos := make([]r3.Vector, n)
	var weights []float64
	if cfg.attributes {
		weights = make([]float64, n)
	}
	for i := range pos {
		c := res.Coordinate(i)
		pos[i] = cfg.place(r3.Vector{X: span(c[0], u), Y: span(c[1], v), Z: span(c[2], w)})
		if weights != nil {
			weights[i] = 1 + 0.25*float64((c[0]+2*c[1]+3*c[2])%4)
		}
	}
	l, err := lattice.New(res, pos, weights)
	if err != nil {
		return nil, builderErrorf(MethodBox, ErrConstructFailed, "%v", err)
	}
	return l, nil
}

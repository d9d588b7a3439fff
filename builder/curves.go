// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// curves.go — curve network fixtures.
//
// Design:
//   • A fixture is a list of sampled strands (points and unit tangents).
//   • Handles sit handleLength before and after each point along the
//     tangent, so handle_left precedes the point in traversal order.
//   • Handle types differ per side (left=1, right=2), which makes a
//     reversal without the pair swap observable.
//   • Custom knots are non-uniform (k_j = j² + curve index), which makes a
//     reversal without mirroring observable.

package builder

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/attribute"
	"github.com/katalvlaran/geocmp/curves"
)

// strand is one sampled curve in unit space.
type strand struct {
	points   []r3.Vector
	tangents []r3.Vector
	cyclic   bool
}

// Helix builds one open curve of the given number of points winding twice
// around the Z axis.
//
// Errors: ErrBadSize if points is below MinHelixPoints.
func Helix(points int, opts ...BuilderOption) (*curves.Curves, error) {
	if points < MinHelixPoints {
		return nil, builderErrorf(MethodHelix, ErrBadSize, "points=%d", points)
	}
	cfg := newBuilderConfig(opts...)
	var s strand
	span := helixTurns * 2 * math.Pi
	for i := 0; i < points; i++ {
		t := span * float64(i) / float64(points-1)
		s.points = append(s.points, r3.Vector{X: math.Cos(t), Y: math.Sin(t), Z: helixRise * t / (2 * math.Pi)})
		s.tangents = append(s.tangents, r3.Vector{X: -math.Sin(t), Y: math.Cos(t), Z: helixRise / (2 * math.Pi)}.Normalize())
	}
	return buildCurves(MethodHelix, cfg, []strand{s})
}

// Circles builds count cyclic curves of points each. Circle k lies in the
// plane Z = k*0.5 with radius 1 + k*0.5.
//
// Errors: ErrBadSize if count is below MinCircles or points below
// MinCirclePoints.
func Circles(count, points int, opts ...BuilderOption) (*curves.Curves, error) {
	if count < MinCircles || points < MinCirclePoints {
		return nil, builderErrorf(MethodCircles, ErrBadSize, "count=%d points=%d", count, points)
	}
	cfg := newBuilderConfig(opts...)
	strands := make([]strand, count)
	for k := range strands {
		radius := 1 + float64(k)*circleSpacing
		z := float64(k) * circleSpacing
		s := strand{cyclic: true}
		for j := 0; j < points; j++ {
			t := 2 * math.Pi * float64(j) / float64(points)
			s.points = append(s.points, r3.Vector{X: radius * math.Cos(t), Y: radius * math.Sin(t), Z: z})
			s.tangents = append(s.tangents, r3.Vector{X: -math.Sin(t), Y: math.Cos(t)})
		}
		strands[k] = s
	}
	return buildCurves(MethodCircles, cfg, strands)
}

func buildCurves(method string, cfg builderConfig, strands []strand) (*curves.Curves, error) {
	var (
		pos, left, right []r3.Vector
		radius, tilt     []float64
		typeL, typeR     []int8
		sizes            []int
		cyclic           []bool
		anyCyclic        bool
	)
	for _, s := range strands {
		sizes = append(sizes, len(s.points))
		cyclic = append(cyclic, s.cyclic)
		anyCyclic = anyCyclic || s.cyclic
		for i, p := range s.points {
			tan := s.tangents[i].Mul(handleLength)
			pos = append(pos, cfg.place(p))
			left = append(left, cfg.place(p.Sub(tan)))
			right = append(right, cfg.place(p.Add(tan)))
			radius = append(radius, 1+0.1*float64(i))
			tilt = append(tilt, 0.05*float64(i))
			typeL = append(typeL, 1)
			typeR = append(typeR, 2)
		}
	}
	c, err := curves.New(pos, sizes)
	if err != nil {
		return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
	}

	var attrs []*attribute.Attribute
	add := func(a *attribute.Attribute, e error) {
		if err != nil {
			return
		}
		if err = e; err == nil {
			attrs = append(attrs, a)
		}
	}
	if anyCyclic {
		add(attribute.NewBool(attribute.Cyclic, attribute.Curve, cyclic))
	}
	if cfg.attributes {
		add(attribute.NewFloat(attribute.Radius, attribute.Point, radius))
		add(attribute.NewFloat(attribute.Tilt, attribute.Point, tilt))
		add(attribute.NewFloat3(attribute.HandleLeft, attribute.Point, left))
		add(attribute.NewFloat3(attribute.HandleRight, attribute.Point, right))
		add(attribute.NewInt8(attribute.HandleTypeLeft, attribute.Point, typeL))
		add(attribute.NewInt8(attribute.HandleTypeRight, attribute.Point, typeR))
	}
	for _, a := range attrs {
		if err != nil {
			break
		}
		err = c.SetAttribute(a)
	}
	if err != nil {
		return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
	}

	if cfg.attributes {
		for k, size := range sizes {
			knots := make([]float64, size+4)
			for j := range knots {
				knots[j] = float64(j*j + k)
			}
			if err = c.SetCustomKnots(k, knots); err != nil {
				return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
			}
		}
	}
	return c, nil
}

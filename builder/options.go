// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// options.go — functional options for the builder package.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.
//   • Constructors themselves never panic.
//   • Randomness is explicit: WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// BuilderOption customizes a constructor by mutating builderConfig before
// construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit random source for Shuffle* variants.
// Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a seeded random source for Shuffle* variants.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithScale multiplies fixture coordinates by s. Panics unless s is finite
// and positive.
func WithScale(s float64) BuilderOption {
	if !(s > 0) || math.IsInf(s, 0) {
		panic("builder: WithScale requires a finite positive factor")
	}
	return func(c *builderConfig) {
		c.scale = s
	}
}

// WithCenter translates fixtures so their unit-space origin lands on p.
// Panics on non-finite coordinates.
func WithCenter(p r3.Vector) BuilderOption {
	for _, x := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			panic("builder: WithCenter requires finite coordinates")
		}
	}
	return func(c *builderConfig) {
		c.center = p
	}
}

// WithAttributes attaches sample attributes to fixtures: on meshes a vertex
// height, an edge length, a face material and corner UVs; on curves radius,
// tilt, handle positions and handle types; on lattices varying weights.
func WithAttributes() BuilderOption {
	return func(c *builderConfig) {
		c.attributes = true
	}
}

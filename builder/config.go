// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng        = nil     (fixtures never draw; Shuffle* require a source)
//   • scale      = 1.0
//   • center     = origin
//   • attributes = false   (bare geometry)

package builder

import (
	"math/rand"

	"github.com/golang/geo/r3"
)

// builderConfig aggregates all knobs used by constructors. It is passed by
// value.
type builderConfig struct {
	rng        *rand.Rand
	scale      float64
	center     r3.Vector
	attributes bool
}

// newBuilderConfig applies opts in order over the defaults; later options
// override earlier ones.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{scale: defaultScale}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// place maps a unit-space point to fixture space.
func (c builderConfig) place(p r3.Vector) r3.Vector {
	return p.Mul(c.scale).Add(c.center)
}

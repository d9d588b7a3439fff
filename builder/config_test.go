package builder

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBuilderConfig_Defaults verifies the deterministic defaults.
func TestNewBuilderConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig()
	assert.Nil(t, cfg.rng)
	assert.Equal(t, defaultScale, cfg.scale)
	assert.Equal(t, r3.Vector{}, cfg.center)
	assert.False(t, cfg.attributes)
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, cfg.place(r3.Vector{X: 1, Y: 2, Z: 3}))
}

// TestNewBuilderConfig_Overrides verifies that later options win.
func TestNewBuilderConfig_Overrides(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig(
		WithScale(2), WithScale(3),
		WithCenter(r3.Vector{X: 1}),
		WithAttributes(),
		WithSeed(7),
	)
	assert.Equal(t, 3.0, cfg.scale)
	assert.True(t, cfg.attributes)
	require.NotNil(t, cfg.rng)
	assert.Equal(t, r3.Vector{X: 4, Y: 3, Z: -3}, cfg.place(r3.Vector{X: 1, Y: 1, Z: -1}))

	// Equal seeds give equal streams.
	other := newBuilderConfig(WithSeed(7))
	assert.Equal(t, other.rng.Int63(), cfg.rng.Int63())

	r := rand.New(rand.NewSource(1))
	assert.Same(t, r, newBuilderConfig(WithRand(r)).rng)
}

// TestOptions_Panics verifies that option constructors reject meaningless
// values.
func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { WithRand(nil) })
	assert.Panics(t, func() { WithScale(0) })
	assert.Panics(t, func() { WithScale(-1) })
	assert.Panics(t, func() { WithScale(math.NaN()) })
	assert.Panics(t, func() { WithScale(math.Inf(1)) })
	assert.Panics(t, func() { WithCenter(r3.Vector{Y: math.NaN()}) })
	assert.Panics(t, func() { WithCenter(r3.Vector{Z: math.Inf(-1)}) })
	assert.NotPanics(t, func() { WithCenter(r3.Vector{X: -5}) })
}

func TestMirrorKnots(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{0, 5, 8, 9}, mirrorKnots([]float64{0, 1, 4, 9}))
	assert.Equal(t, []float64{2}, mirrorKnots([]float64{2}))
	assert.Empty(t, mirrorKnots(nil))
}

func TestIsPermutation(t *testing.T) {
	t.Parallel()

	assert.True(t, isPermutation([]int{2, 0, 1}, 3))
	assert.True(t, isPermutation(nil, 0))
	assert.False(t, isPermutation([]int{0, 0, 1}, 3))
	assert.False(t, isPermutation([]int{0, 1}, 3))
	assert.False(t, isPermutation([]int{0, 1, 3}, 3))
	assert.False(t, isPermutation([]int{-1, 0, 1}, 3))
}

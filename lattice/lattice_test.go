package lattice

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolution_IndexRoundTrip walks every point of a 3×2×4 grid and checks
// that Coordinate inverts Index.
func TestResolution_IndexRoundTrip(t *testing.T) {
	r := Resolution{3, 2, 4}
	require.Equal(t, 24, r.Points())
	for i := 0; i < r.Points(); i++ {
		c := r.Coordinate(i)
		require.True(t, r.InBounds(c))
		require.Equal(t, i, r.Index(c))
	}
	assert.Equal(t, [3]int{1, 1, 2}, r.Coordinate(1+1*3+2*6))
	assert.False(t, r.InBounds([3]int{3, 0, 0}))
	assert.False(t, r.InBounds([3]int{0, -1, 0}))
}

// TestResolution_EachNeighbor counts axis neighbors of a corner, an edge
// interior point and the body center of a 3×3×3 grid.
func TestResolution_EachNeighbor(t *testing.T) {
	r := Resolution{3, 3, 3}
	count := func(i int) (n int, axes [3]int) {
		r.EachNeighbor(i, func(_, axis int) {
			n++
			axes[axis]++
		})
		return n, axes
	}

	n, axes := count(r.Index([3]int{0, 0, 0}))
	assert.Equal(t, 3, n)
	assert.Equal(t, [3]int{1, 1, 1}, axes)

	n, _ = count(r.Index([3]int{1, 0, 0}))
	assert.Equal(t, 4, n)

	n, axes = count(r.Index([3]int{1, 1, 1}))
	assert.Equal(t, 6, n)
	assert.Equal(t, [3]int{2, 2, 2}, axes)

	var order []int
	Resolution{2, 1, 1}.EachNeighbor(0, func(j, _ int) { order = append(order, j) })
	assert.Equal(t, []int{1}, order)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Resolution{0, 1, 1}, nil, nil)
	assert.ErrorIs(t, err, ErrBadResolution)

	_, err = New(Resolution{2, 1, 1}, []r3.Vector{{}}, nil)
	assert.ErrorIs(t, err, ErrPointCount)

	_, err = New(Resolution{1, 1, 1}, []r3.Vector{{}}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrPointCount)
}

func TestNew_DefaultWeights(t *testing.T) {
	l, err := New(Resolution{2, 1, 1}, []r3.Vector{{X: 0}, {X: 1}}, nil)
	require.NoError(t, err)
	u, v, w := l.Resolution()
	assert.Equal(t, [3]int{2, 1, 1}, [3]int{u, v, w})
	assert.Equal(t, []float64{1, 1}, l.Weights())
	assert.Equal(t, 1.0, l.Position(1).X)
}

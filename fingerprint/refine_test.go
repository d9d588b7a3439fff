package fingerprint

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// path builds an undirected adjacency from an edge list with one label.
func path(n int, edges [][2]int) *Adjacency {
	b := NewAdjacencyBuilder(n)
	for _, e := range edges {
		b.Link(e[0], e[1], 0)
	}
	return b.Build()
}

func ring(n int, perm []int) *Adjacency {
	b := NewAdjacencyBuilder(n)
	for i := 0; i < n; i++ {
		b.Link(perm[i], perm[(i+1)%n], 7)
	}
	return b.Build()
}

func TestAdjacencyBuilder_Build(t *testing.T) {
	b := NewAdjacencyBuilder(3)
	b.Arc(2, 0, 5)
	b.Link(0, 1, 1)
	b.Arc(0, 2, 9)
	adj := b.Build()

	require.Equal(t, 3, adj.Len())
	targets, labels := adj.Arcs(0)
	assert.Equal(t, []int{1, 2}, targets, "insertion order kept per source")
	assert.Equal(t, []uint32{1, 9}, labels)
	assert.Equal(t, 1, adj.Degree(1))
	assert.Equal(t, 1, adj.Degree(2))
	assert.Equal(t, 0, (*Adjacency)(nil).Len())
}

// TestRefine_SplitsCenter: the middle of a path is told apart from its ends
// regardless of numbering, and the run stops at the fixed point.
func TestRefine_SplitsCenter(t *testing.T) {
	adjA := path(3, [][2]int{{0, 1}, {1, 2}})
	adjB := path(3, [][2]int{{0, 1}, {0, 2}})
	res, err := Refine(context.Background(), make([]uint32, 3), make([]uint32, 3), adjA, adjB, RefineOptions{})
	require.NoError(t, err)

	assert.True(t, res.Balanced)
	assert.True(t, res.Stable)
	assert.Equal(t, 2, res.Rounds)
	assert.Equal(t, 2, res.Classes)
	assert.Equal(t, []uint32{0, 1, 0}, res.A)
	assert.Equal(t, []uint32{1, 0, 0}, res.B)
}

// TestRefine_Unbalanced: a path and an edge plus an isolated vertex differ
// after one round.
func TestRefine_Unbalanced(t *testing.T) {
	adjA := path(3, [][2]int{{0, 1}, {1, 2}})
	adjB := path(3, [][2]int{{0, 1}})
	res, err := Refine(context.Background(), make([]uint32, 3), make([]uint32, 3), adjA, adjB, RefineOptions{})
	require.NoError(t, err)
	assert.False(t, res.Balanced)
	assert.Equal(t, 1, res.Rounds)
}

func TestRefine_InitialImbalance(t *testing.T) {
	adj := path(2, nil)
	res, err := Refine(context.Background(), []uint32{0, 0}, []uint32{0, 1}, adj, adj, RefineOptions{})
	require.NoError(t, err)
	assert.False(t, res.Balanced)
	assert.Zero(t, res.Rounds)
}

func TestRefine_MaxRounds(t *testing.T) {
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}}
	adj := path(6, edges)
	res, err := Refine(context.Background(), make([]uint32, 6), make([]uint32, 6), adj, adj, RefineOptions{MaxRounds: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rounds)
	assert.True(t, res.Balanced)
	assert.False(t, res.Stable)
}

// TestRefine_ParallelRing: every vertex of a ring is alike, whatever the
// numbering; the work is split across goroutines.
func TestRefine_ParallelRing(t *testing.T) {
	const n = 2000
	ident := make([]int, n)
	shuffled := make([]int, n)
	for i := range ident {
		ident[i] = i
		shuffled[i] = (i * 7919) % n
	}
	res, err := Refine(context.Background(), make([]uint32, n), make([]uint32, n),
		ring(n, ident), ring(n, shuffled), RefineOptions{Workers: 4})
	require.NoError(t, err)
	assert.True(t, res.Balanced)
	assert.True(t, res.Stable)
	assert.Equal(t, 1, res.Classes)
}

func TestRefine_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	adj := path(2, [][2]int{{0, 1}})
	_, err := Refine(ctx, make([]uint32, 2), make([]uint32, 2), adj, adj, RefineOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParallelRange_Covers(t *testing.T) {
	const n = 5000
	seen := make([]int32, n)
	var calls atomic.Int32
	err := ParallelRange(context.Background(), n, 3, func(lo, hi int) error {
		calls.Add(1)
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
		return nil
	})
	require.NoError(t, err)
	for i, s := range seen {
		require.Equal(t, int32(1), s, "index %d", i)
	}
	assert.Greater(t, calls.Load(), int32(1))

	boom := errors.New("boom")
	err = ParallelRange(context.Background(), n, 3, func(lo, hi int) error { return boom })
	assert.ErrorIs(t, err, boom)
}

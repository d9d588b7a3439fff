package bijection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geocmp/bijection"
	"github.com/katalvlaran/geocmp/fingerprint"
)

// edge is an undirected labeled relation.
type edge struct {
	u, v  int
	label uint32
}

func adjacency(n int, edges ...edge) *fingerprint.Adjacency {
	b := fingerprint.NewAdjacencyBuilder(n)
	for _, e := range edges {
		b.Link(e.u, e.v, e.label)
	}
	return b.Build()
}

func cycle(n int, perm func(int) int) *fingerprint.Adjacency {
	edges := make([]edge, n)
	for i := 0; i < n; i++ {
		edges[i] = edge{perm(i), perm((i + 1) % n), 0}
	}
	return adjacency(n, edges...)
}

// TestResolve_Singletons: distinct colors resolve in one round.
func TestResolve_Singletons(t *testing.T) {
	adjA := adjacency(3, edge{0, 1, 0}, edge{1, 2, 0})
	adjB := adjacency(3, edge{2, 0, 0}, edge{0, 1, 0})
	res, err := bijection.Resolve(context.Background(),
		[]uint32{5, 6, 7}, []uint32{6, 7, 5}, adjA, adjB, bijection.Options{})
	require.NoError(t, err)

	assert.Equal(t, bijection.Resolved, res.Outcome)
	assert.Equal(t, []int{2, 0, 1}, res.Forward)
	assert.Equal(t, []int{1, 2, 0}, res.Backward)
	assert.Equal(t, -1, res.Source)
	assert.Zero(t, res.Trials)
	assert.True(t, res.Complete())
}

// TestResolve_PathReflection: a path is symmetric, so one individualization
// choice is needed; the lowest candidate wins without a backtrack.
func TestResolve_PathReflection(t *testing.T) {
	adjA := adjacency(4, edge{0, 1, 0}, edge{1, 2, 0}, edge{2, 3, 0})
	adjB := adjacency(4, edge{2, 0, 0}, edge{0, 1, 0}, edge{1, 3, 0})
	colorsA := []uint32{0, 1, 1, 0}
	colorsB := []uint32{1, 1, 0, 0}

	res, err := bijection.Resolve(context.Background(), colorsA, colorsB, adjA, adjB, bijection.Options{MaxBacktrack: -1})
	require.NoError(t, err)
	assert.Equal(t, bijection.Resolved, res.Outcome)
	assert.Equal(t, []int{2, 0, 1, 3}, res.Forward)
	assert.Zero(t, res.Trials)

	// Without individualization the symmetry stays unresolved.
	res, err = bijection.Resolve(context.Background(), colorsA, colorsB, adjA, adjB, bijection.Options{})
	require.NoError(t, err)
	assert.Equal(t, bijection.Ambiguous, res.Outcome)
	assert.Equal(t, 0, res.Source)
}

// TestResolve_LabelConflict: the labels around the anchor do not agree.
func TestResolve_LabelConflict(t *testing.T) {
	adjA := adjacency(3, edge{0, 2, 0}, edge{1, 2, 1})
	adjB := adjacency(3, edge{0, 2, 0}, edge{1, 2, 0})
	res, err := bijection.Resolve(context.Background(),
		[]uint32{0, 0, 1}, []uint32{0, 0, 1}, adjA, adjB, bijection.Options{})
	require.NoError(t, err)
	assert.Equal(t, bijection.Conflict, res.Outcome)
	assert.Equal(t, 1, res.Source)
}

// TestResolve_Inconsistent: colors alone force a mapping that breaks edges.
func TestResolve_Inconsistent(t *testing.T) {
	adjA := adjacency(3, edge{0, 1, 0}, edge{1, 2, 0})
	adjB := adjacency(3, edge{0, 2, 0}, edge{2, 1, 0})
	res, err := bijection.Resolve(context.Background(),
		[]uint32{0, 1, 2}, []uint32{0, 1, 2}, adjA, adjB, bijection.Options{})
	require.NoError(t, err)
	assert.Equal(t, bijection.Inconsistent, res.Outcome)
	assert.Equal(t, 0, res.Source)
	assert.Equal(t, []int{0, 1, 2}, res.Forward)
}

// TestResolve_HexagonVsTriangles: refinement cannot tell a 6-cycle from two
// triangles; exhaustive individualization proves no bijection exists.
func TestResolve_HexagonVsTriangles(t *testing.T) {
	adjA := cycle(6, func(i int) int { return i })
	adjB := adjacency(6,
		edge{0, 1, 0}, edge{1, 2, 0}, edge{2, 0, 0},
		edge{3, 4, 0}, edge{4, 5, 0}, edge{5, 3, 0})
	colors := make([]uint32, 6)

	res, err := bijection.Resolve(context.Background(), colors, colors, adjA, adjB, bijection.Options{MaxBacktrack: 64})
	require.NoError(t, err)
	assert.Equal(t, bijection.Conflict, res.Outcome)
	assert.Equal(t, 11, res.Trials)

	res, err = bijection.Resolve(context.Background(), colors, colors, adjA, adjB, bijection.Options{MaxBacktrack: 10})
	require.NoError(t, err)
	assert.Equal(t, bijection.Ambiguous, res.Outcome)
	assert.Equal(t, 10, res.Trials)
}

// TestResolve_FreeFirstChoices: many interchangeable elements need one
// individualization each but no backtrack, so a small budget suffices.
func TestResolve_FreeFirstChoices(t *testing.T) {
	const n = 70
	adj := adjacency(n)
	colors := make([]uint32, n)

	res, err := bijection.Resolve(context.Background(), colors, colors, adj, adj, bijection.Options{MaxBacktrack: 1})
	require.NoError(t, err)
	assert.Equal(t, bijection.Resolved, res.Outcome)
	assert.Zero(t, res.Trials)
	assert.True(t, res.Complete())

	// 35 disjoint edges: every pair is fixed by one choice.
	edges := make([]edge, 0, n/2)
	for i := 0; i < n; i += 2 {
		edges = append(edges, edge{i, i + 1, 0})
	}
	pairs := adjacency(n, edges...)
	res, err = bijection.Resolve(context.Background(), colors, colors, pairs, pairs, bijection.Options{MaxBacktrack: 1})
	require.NoError(t, err)
	assert.Equal(t, bijection.Resolved, res.Outcome)
	assert.Zero(t, res.Trials)
}

// TestResolve_Accept: the pair filter steers the search away from the
// lowest candidates.
func TestResolve_Accept(t *testing.T) {
	adj := adjacency(2)
	colors := []uint32{0, 0}
	crossed := func(a, b int) bool { return a != b }

	res, err := bijection.Resolve(context.Background(), colors, colors, adj, adj,
		bijection.Options{MaxBacktrack: -1, Accept: crossed})
	require.NoError(t, err)
	assert.Equal(t, bijection.Resolved, res.Outcome)
	assert.Equal(t, []int{1, 0}, res.Forward)
	assert.Zero(t, res.Trials)

	// With one neighbor resolved the filter applies during propagation.
	path := adjacency(3, edge{0, 1, 0}, edge{1, 2, 0})
	res, err = bijection.Resolve(context.Background(),
		[]uint32{0, 1, 0}, []uint32{0, 1, 0}, path, path,
		bijection.Options{MaxBacktrack: -1, Accept: func(a, b int) bool { return a != 0 || b == 2 }})
	require.NoError(t, err)
	assert.Equal(t, bijection.Resolved, res.Outcome)
	assert.Equal(t, []int{2, 1, 0}, res.Forward)

	res, err = bijection.Resolve(context.Background(), colors, colors, adj, adj,
		bijection.Options{MaxBacktrack: -1, Accept: func(a, _ int) bool { return a != 1 }})
	require.NoError(t, err)
	assert.Equal(t, bijection.Conflict, res.Outcome)
}

// TestResolve_CompleteBacktracks walks all six mappings of three
// interchangeable elements until the last one is accepted.
func TestResolve_CompleteBacktracks(t *testing.T) {
	adj := adjacency(3)
	colors := make([]uint32, 3)
	var seen [][]int
	onlyReversed := func(fwd []int) bool {
		seen = append(seen, append([]int(nil), fwd...))
		return fwd[0] == 2 && fwd[1] == 1
	}

	res, err := bijection.Resolve(context.Background(), colors, colors, adj, adj,
		bijection.Options{Workers: 1, MaxBacktrack: 5, Complete: onlyReversed})
	require.NoError(t, err)
	assert.Equal(t, bijection.Resolved, res.Outcome)
	assert.Equal(t, []int{2, 1, 0}, res.Forward)
	assert.Equal(t, 5, res.Trials)
	assert.Len(t, seen, 6)

	res, err = bijection.Resolve(context.Background(), colors, colors, adj, adj,
		bijection.Options{MaxBacktrack: 4, Complete: onlyReversed})
	require.NoError(t, err)
	assert.Equal(t, bijection.Ambiguous, res.Outcome)
	assert.Equal(t, 4, res.Trials)

	res, err = bijection.Resolve(context.Background(), colors, colors, adj, adj,
		bijection.Options{MaxBacktrack: -1, Complete: func([]int) bool { return false }})
	require.NoError(t, err)
	assert.Equal(t, bijection.Rejected, res.Outcome)
	assert.Equal(t, 5, res.Trials)
}

// TestResolve_RingParallel: a renumbered ring resolves identically for any
// worker count.
func TestResolve_RingParallel(t *testing.T) {
	const n = 600
	adjA := cycle(n, func(i int) int { return i })
	adjB := cycle(n, func(i int) int { return (i * 7) % n })
	colors := make([]uint32, n)

	var want []int
	for _, workers := range []int{1, 4} {
		res, err := bijection.Resolve(context.Background(), colors, colors, adjA, adjB,
			bijection.Options{Workers: workers, MaxBacktrack: -1})
		require.NoError(t, err)
		require.Equal(t, bijection.Resolved, res.Outcome)
		for a, b := range res.Forward {
			require.Equal(t, a, res.Backward[b])
		}
		if want == nil {
			want = res.Forward
			continue
		}
		assert.Equal(t, want, res.Forward)
	}
}

func TestResolve_Errors(t *testing.T) {
	adj := adjacency(2, edge{0, 1, 0})
	_, err := bijection.Resolve(context.Background(), []uint32{0, 0}, []uint32{0}, adj, adj, bijection.Options{})
	assert.ErrorIs(t, err, bijection.ErrShape)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bijection.Resolve(ctx, []uint32{0, 0}, []uint32{0, 0}, adj, adj, bijection.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_Empty(t *testing.T) {
	adj := adjacency(0)
	res, err := bijection.Resolve(context.Background(), nil, nil, adj, adj, bijection.Options{})
	require.NoError(t, err)
	assert.Equal(t, bijection.Resolved, res.Outcome)
	assert.Zero(t, res.Len())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "resolved", bijection.Resolved.String())
	assert.Equal(t, "inconsistent", bijection.Inconsistent.String())
	assert.Equal(t, "rejected", bijection.Rejected.String())
	assert.Equal(t, "Outcome(9)", bijection.Outcome(9).String())
}

func TestMapping_Identity(t *testing.T) {
	m := bijection.Identity(3)
	assert.True(t, m.Complete())
	assert.False(t, bijection.NewMapping(2).Complete())
}

package bijection

import (
	"context"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/geocmp/fingerprint"
)

// state is one node of the individualization search. Candidate bitmaps are
// replaced, never mutated, so a shallow copy of cand is a valid snapshot.
type state struct {
	fwd, bwd []int
	cand     []*roaring.Bitmap // nil: the whole color class
	claimed  *roaring.Bitmap
	left     int
}

func newState(n int) *state {
	m := NewMapping(n)
	return &state{
		fwd:     m.Forward,
		bwd:     m.Backward,
		cand:    make([]*roaring.Bitmap, n),
		claimed: roaring.New(),
		left:    n,
	}
}

func (s *state) clone() *state {
	return &state{
		fwd:     slices.Clone(s.fwd),
		bwd:     slices.Clone(s.bwd),
		cand:    slices.Clone(s.cand),
		claimed: s.claimed.Clone(),
		left:    s.left,
	}
}

func (s *state) assign(a, b int) {
	s.fwd[a] = b
	s.bwd[b] = a
	s.cand[a] = roaring.BitmapOf(uint32(b))
	s.claimed.Add(uint32(b))
	s.left--
}

type resolver struct {
	ctx       context.Context
	workers   int
	maxRounds int
	budget    int
	accept    func(a, b int) bool
	complete  func(fwd []int) bool

	colorsA []uint32
	classB  map[uint32]*roaring.Bitmap
	adjA    *fingerprint.Adjacency
	adjB    *fingerprint.Adjacency
	inB     *fingerprint.Adjacency

	rounds int
	trials int
}

// Resolve searches a bijection A → B that maps every element onto one of
// the same color and preserves labeled adjacency: the arcs a→t labeled l in
// adjA map onto arcs σ(a)→σ(t) labeled l in adjB, as multisets.
//
// Steps:
//  1. Seed candidate sets from color classes.
//  2. Propagate to a fixed point (see package doc).
//  3. If ambiguity remains, individualize within the MaxBacktrack budget.
//  4. Check labeled adjacency of the complete mapping, then Options.Complete;
//     a failure of either backtracks.
//
// The only errors are ErrShape and ctx's error; a missing correspondence is
// reported through Result.Outcome.
func Resolve(ctx context.Context, colorsA, colorsB []uint32, adjA, adjB *fingerprint.Adjacency, opts Options) (Result, error) {
	n := len(colorsA)
	if len(colorsB) != n || adjA.Len() != n || adjB.Len() != n {
		return Result{Source: -1}, ErrShape
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r := &resolver{
		ctx:       ctx,
		workers:   opts.Workers,
		maxRounds: opts.MaxRounds,
		budget:    opts.MaxBacktrack,
		accept:    opts.Accept,
		complete:  opts.Complete,
		colorsA:   colorsA,
		classB:    make(map[uint32]*roaring.Bitmap),
		adjA:      adjA,
		adjB:      adjB,
		inB:       transpose(adjB),
	}
	if r.maxRounds <= 0 {
		r.maxRounds = n + 1
	}
	if r.budget < 0 {
		r.budget = DefaultMaxBacktrack
	}
	for b, c := range colorsB {
		set, ok := r.classB[c]
		if !ok {
			set = roaring.New()
			r.classB[c] = set
		}
		set.Add(uint32(b))
	}

	final, out, src, err := r.solve(newState(n))
	res := Result{
		Mapping: Mapping{Forward: final.fwd, Backward: final.bwd},
		Outcome: out,
		Source:  src,
		Rounds:  r.rounds,
		Trials:  r.trials,
	}
	return res, err
}

// transpose reverses every arc of adj, keeping labels.
func transpose(adj *fingerprint.Adjacency) *fingerprint.Adjacency {
	b := fingerprint.NewAdjacencyBuilder(adj.Len())
	for s := 0; s < adj.Len(); s++ {
		targets, labels := adj.Arcs(s)
		for k, t := range targets {
			b.Arc(t, s, labels[k])
		}
	}
	return b.Build()
}

// solve propagates st and individualizes if needed. It returns the state the
// outcome refers to.
func (r *resolver) solve(st *state) (*state, Outcome, int, error) {
	ok, src, err := r.propagate(st)
	if err != nil {
		return st, Conflict, src, err
	}
	if !ok {
		return st, Conflict, src, nil
	}
	if st.left == 0 {
		if bad := r.inconsistent(st); bad >= 0 {
			return st, Inconsistent, bad, nil
		}
		if r.complete != nil && !r.complete(st.fwd) {
			return st, Rejected, -1, nil
		}
		return st, Resolved, -1, nil
	}

	pivot := r.pivot(st)
	if r.budget == 0 {
		return st, Ambiguous, pivot, nil
	}
	choices := r.admit(pivot, r.available(st, pivot)).ToArray()
	last, lastOut, lastSrc := st, Conflict, pivot
	for i, b := range choices {
		// The first choice is free; every further one is a backtrack.
		if i > 0 {
			if r.trials >= r.budget {
				return st, Ambiguous, pivot, nil
			}
			r.trials++
		}
		next := st.clone()
		next.assign(pivot, int(b))
		got, out, src, err := r.solve(next)
		if err != nil {
			return got, out, src, err
		}
		switch out {
		case Resolved, Ambiguous:
			return got, out, src, nil
		}
		last, lastOut, lastSrc = got, out, src
	}
	return last, lastOut, lastSrc, nil
}

// base is a's candidate set before removing claimed targets.
func (r *resolver) base(st *state, a int) *roaring.Bitmap {
	if set := st.cand[a]; set != nil {
		return set
	}
	if set, ok := r.classB[r.colorsA[a]]; ok {
		return set
	}
	return roaring.New()
}

// available is a's candidate set minus targets claimed by others.
func (r *resolver) available(st *state, a int) *roaring.Bitmap {
	return roaring.AndNot(r.base(st, a), st.claimed)
}

// sources returns the B elements with an arc labeled label into m.
func (r *resolver) sources(m int, label uint32) *roaring.Bitmap {
	set := roaring.New()
	from, labels := r.inB.Arcs(m)
	for k, s := range from {
		if labels[k] == label {
			set.Add(uint32(s))
		}
	}
	return set
}

// narrow computes a's next candidate set from the current round's state, or
// nil when a has no resolved neighbor and still at least two candidates.
func (r *resolver) narrow(st *state, a int) *roaring.Bitmap {
	targets, labels := r.adjA.Arcs(a)
	if !slices.ContainsFunc(targets, func(t int) bool { return st.fwd[t] >= 0 }) {
		base := r.base(st, a)
		if base.GetCardinality()-base.AndCardinality(st.claimed) >= 2 {
			return nil
		}
	}
	set := r.available(st, a)
	for k, t := range targets {
		img := st.fwd[t]
		if img < 0 {
			continue
		}
		set.And(r.sources(img, labels[k]))
		if set.IsEmpty() {
			break
		}
	}
	return r.admit(a, set)
}

// admit drops the members of set that Options.Accept refuses as images of a.
// set is modified in place.
func (r *resolver) admit(a int, set *roaring.Bitmap) *roaring.Bitmap {
	if r.accept == nil || set.IsEmpty() {
		return set
	}
	var refused []uint32
	it := set.Iterator()
	for it.HasNext() {
		if b := it.Next(); !r.accept(a, int(b)) {
			refused = append(refused, b)
		}
	}
	for _, b := range refused {
		set.Remove(b)
	}
	return set
}

// propagate runs double-buffered rounds until no candidate set shrinks.
// It returns false and the offending element on a conflict.
func (r *resolver) propagate(st *state) (bool, int, error) {
	n := len(st.fwd)
	for round := 0; round < r.maxRounds && st.left > 0; round++ {
		next := make([]*roaring.Bitmap, n)
		err := fingerprint.ParallelRange(r.ctx, n, r.workers, func(lo, hi int) error {
			for a := lo; a < hi; a++ {
				if st.fwd[a] < 0 {
					next[a] = r.narrow(st, a)
				}
			}
			return nil
		})
		if err != nil {
			return false, -1, err
		}
		r.rounds++

		changed := false
		for a, set := range next {
			if set == nil {
				continue
			}
			card := set.GetCardinality()
			if card == 0 {
				return false, a, nil
			}
			if card < r.base(st, a).GetCardinality() {
				changed = true
			}
			if card == 1 {
				b := int(set.Minimum())
				if st.bwd[b] >= 0 {
					// Two elements forced onto one target in the same round.
					return false, a, nil
				}
				st.assign(a, b)
				changed = true
				continue
			}
			st.cand[a] = set
		}
		if !changed {
			break
		}
	}
	return true, -1, nil
}

// pivot returns the unresolved element with the fewest available
// candidates, lowest index first.
func (r *resolver) pivot(st *state) int {
	best, bestCard := -1, uint64(0)
	for a, b := range st.fwd {
		if b >= 0 {
			continue
		}
		base := r.base(st, a)
		card := base.GetCardinality() - base.AndCardinality(st.claimed)
		if best < 0 || card < bestCard {
			best, bestCard = a, card
		}
	}
	return best
}

// inconsistent returns the first element whose labeled arcs do not map onto
// its image's arcs, or -1.
func (r *resolver) inconsistent(st *state) int {
	n := len(st.fwd)
	bad := make([]bool, n)
	_ = fingerprint.ParallelRange(context.Background(), n, r.workers, func(lo, hi int) error {
		var pa, pb []uint64
		for a := lo; a < hi; a++ {
			pa = pa[:0]
			targets, labels := r.adjA.Arcs(a)
			for k, t := range targets {
				pa = append(pa, uint64(labels[k])<<32|uint64(st.fwd[t]))
			}
			pb = pb[:0]
			targets, labels = r.adjB.Arcs(st.fwd[a])
			for k, t := range targets {
				pb = append(pb, uint64(labels[k])<<32|uint64(t))
			}
			slices.Sort(pa)
			slices.Sort(pb)
			bad[a] = !slices.Equal(pa, pb)
		}
		return nil
	})
	return slices.Index(bad, true)
}

package compare

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/attribute"
	"github.com/katalvlaran/geocmp/bijection"
	"github.com/katalvlaran/geocmp/fingerprint"
	"github.com/katalvlaran/geocmp/tolerance"
)

// session carries the resolved options of one call. It is never shared
// between calls.
type session struct {
	ctx  context.Context
	opts Options
	tol  tolerance.Tolerance
	log  *Logger

	// quiet suppresses mismatch records while candidate mappings are vetted.
	quiet bool
}

func newSession(domain string, threshold float64, opts []Option) (*session, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadThreshold, threshold)
	}
	mode := tolerance.Absolute
	if o.Relative {
		if threshold >= 1 {
			return nil, fmt.Errorf("%w: relative threshold must be below 1 (%v)", ErrOptionViolation, threshold)
		}
		mode = tolerance.Relative
	}
	return &session{
		ctx:  o.Ctx,
		opts: o,
		tol:  tolerance.Tolerance{Threshold: threshold, Mode: mode},
		log:  newLogger(o.Logger, domain),
	}, nil
}

// fail logs m and returns it.
func (s *session) fail(m Mismatch, attr string, index int) Mismatch {
	if !s.quiet {
		s.log.LogMismatch(s.ctx, m, attr, index)
	}
	return m
}

// quietly runs check without logging the mismatch it may return.
func (s *session) quietly(check func() Mismatch) Mismatch {
	s.quiet = true
	defer func() { s.quiet = false }()
	return check()
}

// tolFor returns the tolerance for values of typ.
func (s *session) tolFor(typ attribute.Type) tolerance.Tolerance {
	if typ.Exact() {
		return tolerance.Exact
	}
	return s.tol
}

// channel is one balance-checked value column.
type channel struct {
	name     string
	kind     Mismatch
	classify func(tol tolerance.Tolerance) (ca, cb []uint32)
}

func valueChannel(kind Mismatch, ch fingerprint.Channel) channel {
	return channel{
		name: ch.Name,
		kind: kind,
		classify: func(tol tolerance.Tolerance) ([]uint32, []uint32) {
			return fingerprint.Classify(ch, tol)
		},
	}
}

func attributeChannel(a, b *attribute.Attribute) fingerprint.Channel {
	return fingerprint.Channel{
		Name:  a.Name,
		Width: a.Type.Width(),
		Exact: a.Type.Exact(),
		A:     a.Flat(),
		B:     b.Flat(),
	}
}

// positionChannel flattens n positions of each side.
func positionChannel(n int, pa, pb func(int) r3.Vector) fingerprint.Channel {
	flat := func(pos func(int) r3.Vector) []float64 {
		out := make([]float64, 0, 3*n)
		for i := 0; i < n; i++ {
			p := pos(i)
			out = append(out, p.X, p.Y, p.Z)
		}
		return out
	}
	return fingerprint.Channel{Name: "position", Width: 3, A: flat(pa), B: flat(pb)}
}

// attrPair is one attribute present in both inputs.
type attrPair struct {
	a, b *attribute.Attribute
}

// pairs lists the attributes of domain d by name. The schema check runs
// first, so both sides declare the same names.
func pairs(a, b *attribute.Set, d attribute.Domain) []attrPair {
	la := a.On(d)
	out := make([]attrPair, 0, len(la))
	for _, x := range la {
		if y, ok := b.Lookup(d, x.Name); ok {
			out = append(out, attrPair{a: x, b: y})
		}
	}
	return out
}

// classes classifies every channel in order, stops at the first unbalanced
// one, and combines the columns into one color per element.
func (s *session) classes(stage string, channels []channel, na, nb int) (ca, cb []uint32, m Mismatch) {
	colsA := make([][]uint32, 0, len(channels))
	colsB := make([][]uint32, 0, len(channels))
	for _, ch := range channels {
		a, b := ch.classify(s.tol)
		if ok, c := fingerprint.Balanced(a, b); !ok {
			idx, _ := fingerprint.FirstOf(a, b, c)
			return nil, nil, s.fail(ch.kind, ch.name, idx)
		}
		colsA = append(colsA, a)
		colsB = append(colsB, b)
	}
	ca, cb = fingerprint.Combine(colsA, colsB, na, nb)
	s.log.LogStage(s.ctx, stage, "channels", len(channels), "classes", fingerprint.Distinct(ca, cb))

	return ca, cb, None
}

// signatures checks that local structure keys occur equally often.
func (s *session) signatures(stage string, kind Mismatch, ka, kb []uint32) Mismatch {
	if ok, c := fingerprint.Balanced(ka, kb); !ok {
		idx, _ := fingerprint.FirstOf(ka, kb, c)
		return s.fail(kind, "", idx)
	}
	s.log.LogStage(s.ctx, stage, "classes", fingerprint.Distinct(ka, kb))
	return None
}

// valueSearch makes the bijection search value-aware: accept is a
// necessary condition on one node pair, verify the full check of a
// complete mapping. The search only returns mappings that verify, so a
// match found at one threshold is still found at any larger one.
type valueSearch struct {
	accept func(a, b int) bool
	verify func(fwd []int) Mismatch
}

// correspond refines the colors over the labeled adjacency and resolves a
// bijection that passes vs. Refinement imbalance, conflicts and ambiguity
// yield kind. When no mapping passes vs, the search is repeated on colors
// and adjacency alone and its result returned for the caller to verify, so
// the first differing value gets named; an Inconsistent result is likewise
// left to the caller.
func (s *session) correspond(kind Mismatch, ca, cb []uint32, adjA, adjB *fingerprint.Adjacency, vs valueSearch) (bijection.Result, Mismatch, error) {
	ref, err := fingerprint.Refine(s.ctx, ca, cb, adjA, adjB, fingerprint.RefineOptions{
		Workers:   s.opts.Workers,
		MaxRounds: s.opts.MaxRounds,
	})
	if err != nil {
		return bijection.Result{}, None, err
	}
	s.log.LogStage(s.ctx, "refine", "rounds", ref.Rounds, "classes", ref.Classes, "stable", ref.Stable)
	if !ref.Balanced {
		_, c := fingerprint.Balanced(ref.A, ref.B)
		idx, _ := fingerprint.FirstOf(ref.A, ref.B, c)
		return bijection.Result{}, s.fail(kind, "", idx), nil
	}

	opts := bijection.Options{
		Workers:      s.opts.Workers,
		MaxRounds:    s.opts.MaxRounds,
		MaxBacktrack: s.opts.MaxBacktrack,
		Accept:       vs.accept,
	}
	if vs.verify != nil {
		opts.Complete = func(fwd []int) bool {
			return s.quietly(func() Mismatch { return vs.verify(fwd) }) == None
		}
	}
	res, err := bijection.Resolve(s.ctx, ref.A, ref.B, adjA, adjB, opts)
	if err != nil {
		return res, None, err
	}
	s.log.LogStage(s.ctx, "resolve", "outcome", res.Outcome.String(), "rounds", res.Rounds, "trials", res.Trials)
	switch res.Outcome {
	case bijection.Resolved:
		return res, None, nil
	case bijection.Ambiguous:
		return res, s.fail(kind, "", res.Source), nil
	}

	opts.Accept, opts.Complete = nil, nil
	res, err = bijection.Resolve(s.ctx, ref.A, ref.B, adjA, adjB, opts)
	if err != nil {
		return res, None, err
	}
	s.log.LogStage(s.ctx, "resolve structure", "outcome", res.Outcome.String(), "rounds", res.Rounds, "trials", res.Trials)
	switch res.Outcome {
	case bijection.Conflict, bijection.Ambiguous:
		return res, s.fail(kind, "", res.Source), nil
	}
	return res, None, nil
}

// samePositions re-checks every mapped position pair.
func (s *session) samePositions(n int, pa, pb func(int) r3.Vector, fwd []int) Mismatch {
	for i := 0; i < n; i++ {
		if !s.tol.EqualVec(pa(i), pb(fwd[i])) {
			return s.fail(Positions, "position", i)
		}
	}
	return None
}

// sameValues re-checks every attribute of a domain under the mapping.
func (s *session) sameValues(kind Mismatch, attrs []attrPair, fwd []int) Mismatch {
	for _, p := range attrs {
		tol := s.tolFor(p.a.Type)
		for i, j := range fwd {
			if !tol.EqualSlice(p.a.Value(i), p.b.Value(j)) {
				return s.fail(kind, p.a.Name, i)
			}
		}
	}
	return None
}

// canonical returns the lexicographically smallest of the rotations (when
// rotate is set) of seq and, when mirror is set, of its reversal.
func canonical(seq []uint32, rotate, mirror bool) []uint32 {
	n := len(seq)
	best := slices.Clone(seq)
	if n == 0 {
		return best
	}
	bases := [][]uint32{seq}
	if mirror {
		rev := slices.Clone(seq)
		slices.Reverse(rev)
		bases = append(bases, rev)
	}
	cand := make([]uint32, n)
	for _, base := range bases {
		starts := 1
		if rotate {
			starts = n
		}
		for r := 0; r < starts; r++ {
			copy(cand, base[r:])
			copy(cand[n-r:], base[:r])
			if slices.Compare(cand, best) < 0 {
				copy(best, cand)
			}
		}
	}
	return best
}

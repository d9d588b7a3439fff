package compare

import (
	"github.com/katalvlaran/geocmp/bijection"
	"github.com/katalvlaran/geocmp/fingerprint"
	"github.com/katalvlaran/geocmp/lattice"
)

// Lattices compares two lattices and returns the first mismatch found, or
// None. Resolutions must be equal exactly. Points may correspond through a
// reversal of any axis; axes are never exchanged.
func Lattices(a, b LatticeSource, threshold float64, opts ...Option) (Mismatch, error) {
	if a == nil || b == nil {
		return None, ErrNilGeometry
	}
	s, err := newSession("lattice", threshold, opts)
	if err != nil {
		return None, err
	}

	var ra, rb lattice.Resolution
	ra[0], ra[1], ra[2] = a.Resolution()
	rb[0], rb[1], rb[2] = b.Resolution()
	if ra != rb {
		return s.fail(LatticeResolution, "", -1), nil
	}
	n := ra.Points()

	weights := func(src LatticeSource) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = src.Weight(i)
		}
		return out
	}
	chs := []channel{
		valueChannel(Positions, positionChannel(n, a.Position, b.Position)),
		valueChannel(LatticeWeights, fingerprint.Channel{Name: "weight", Width: 1, A: weights(a), B: weights(b)}),
	}
	ca, cb, m := s.classes("point values", chs, n, n)
	if m != None {
		return m, nil
	}

	// Both inputs share the grid, so one adjacency serves both.
	labels := fingerprint.NewPalette()
	var axis [3]uint32
	for k := range axis {
		axis[k] = labels.Intern(relAxis, uint32(k))
	}
	ab := fingerprint.NewAdjacencyBuilder(n)
	for i := 0; i < n; i++ {
		ra.EachNeighbor(i, func(j, k int) {
			ab.Arc(i, j, axis[k])
		})
	}
	adj := ab.Build()

	res, m, err := s.correspond(PointCorrespondence, ca, cb, adj, adj, valueSearch{
		accept: func(i, j int) bool {
			return s.tol.EqualVec(a.Position(i), b.Position(j)) && s.tol.Equal(a.Weight(i), b.Weight(j))
		},
		verify: func(fwd []int) Mismatch { return verifyLattice(s, ra, a, b, fwd) },
	})
	if err != nil || m != None {
		return m, err
	}
	if m := verifyLattice(s, ra, a, b, res.Forward); m != None {
		return m, nil
	}
	if res.Outcome == bijection.Inconsistent {
		return s.fail(PointCorrespondence, "", res.Source), nil
	}
	s.log.LogStage(s.ctx, "verify")

	return None, nil
}

// verifyLattice checks that fwd reverses or keeps each axis, then re-checks
// positions and weights.
func verifyLattice(s *session, res lattice.Resolution, a, b LatticeSource, fwd []int) Mismatch {
	n := res.Points()
	if n == 0 {
		return None
	}
	var flip [3]bool
	origin := res.Coordinate(fwd[0])
	for k := range flip {
		switch origin[k] {
		case 0:
		case res[k] - 1:
			flip[k] = true
		default:
			return s.fail(LatticeTopology, "", 0)
		}
	}
	for i := 0; i < n; i++ {
		c := res.Coordinate(i)
		for k := range c {
			if flip[k] {
				c[k] = res[k] - 1 - c[k]
			}
		}
		if res.Index(c) != fwd[i] {
			return s.fail(LatticeTopology, "", i)
		}
	}

	if m := s.samePositions(n, a.Position, b.Position, fwd); m != None {
		return m
	}
	for i := 0; i < n; i++ {
		if !s.tol.Equal(a.Weight(i), b.Weight(fwd[i])) {
			return s.fail(LatticeWeights, "weight", i)
		}
	}
	return None
}

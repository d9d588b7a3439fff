package compare

import (
	"slices"

	"github.com/katalvlaran/geocmp/attribute"
	"github.com/katalvlaran/geocmp/bijection"
	"github.com/katalvlaran/geocmp/fingerprint"
	"github.com/katalvlaran/geocmp/tolerance"
)

var curveDomains = []attribute.Domain{attribute.Point, attribute.Curve}

// Curves compares two curve networks and returns the first mismatch found,
// or None. A curve may match its counterpart traversed backwards unless
// WithReversedCurves(false) is given; the handle attribute pairs then swap
// roles and custom knots are mirrored.
//
// Stages, each short-circuiting:
//  1. point and curve counts;
//  2. attribute schema;
//  3. class balance: curve values (cyclic flag, curve attributes), then
//     positions and point attributes by name;
//  4. curve signatures (canonical point class sequence, then with the
//     curve class);
//  5. color refinement and bijection of the points;
//  6. verification of positions, curve sequences, point attributes, curve
//     attributes and custom knots.
func Curves(a, b CurvesSource, threshold float64, opts ...Option) (Mismatch, error) {
	if a == nil || b == nil {
		return None, ErrNilGeometry
	}
	s, err := newSession("curves", threshold, opts)
	if err != nil {
		return None, err
	}
	c := &curvesCmp{session: s, a: a, b: b}

	return c.run()
}

type curvesCmp struct {
	*session
	a, b CurvesSource

	kA, kB []uint32 // curve classes
	vA, vB []uint32 // point value classes
	pA, pB []uint32 // point value classes combined with the owning curve's class

	// swap pairs the directional handle attributes present on points.
	swap map[string]string
}

func (c *curvesCmp) run() (Mismatch, error) {
	if c.a.PointCount() != c.b.PointCount() {
		return c.fail(NumPoints, "", -1), nil
	}
	if c.a.CurveCount() != c.b.CurveCount() {
		return c.fail(NumCurves, "", -1), nil
	}
	if d, ok := attribute.SameSchema(c.a.Attributes(), c.b.Attributes(), curveDomains...); !ok {
		return c.fail(AttributeSchema, d.String(), -1), nil
	}
	c.swap = make(map[string]string)
	if c.opts.ReversedCurves {
		for _, p := range attribute.DirectionalPairs {
			_, hasL := c.a.Attributes().Lookup(attribute.Point, p.Left)
			_, hasR := c.a.Attributes().Lookup(attribute.Point, p.Right)
			if hasL && hasR {
				c.swap[p.Left], c.swap[p.Right] = p.Right, p.Left
			}
		}
	}

	if m := c.values(); m != None {
		return m, nil
	}
	if m := c.topology(); m != None {
		return m, nil
	}
	adj := c.adjacency()
	res, m, err := c.correspond(PointCorrespondence, c.pA, c.pB, adj[0], adj[1], valueSearch{
		accept: c.acceptPoint(),
		verify: c.verify,
	})
	if err != nil || m != None {
		return m, err
	}
	if m := c.verify(res.Forward); m != None {
		return m, nil
	}
	if res.Outcome == bijection.Inconsistent {
		return c.fail(PointCorrespondence, "", res.Source), nil
	}
	c.log.LogStage(c.ctx, "verify")

	return None, nil
}

// curveOf maps every point to its curve.
func curveOf(src CurvesSource) []int {
	out := make([]int, src.PointCount())
	for k := 0; k < src.CurveCount(); k++ {
		start, size := src.PointRange(k)
		for p := start; p < start+size; p++ {
			out[p] = k
		}
	}
	return out
}

func (c *curvesCmp) values() Mismatch {
	sa, sb := c.a.Attributes(), c.b.Attributes()
	nc := c.a.CurveCount()

	flags := func(src CurvesSource) []float64 {
		out := make([]float64, nc)
		for k := range out {
			if src.Cyclic(k) {
				out[k] = 1
			}
		}
		return out
	}
	curveChs := []channel{valueChannel(CurveAttributes, fingerprint.Channel{
		Name: attribute.Cyclic, Width: 1, Exact: true, A: flags(c.a), B: flags(c.b),
	})}
	for _, p := range pairs(sa, sb, attribute.Curve) {
		if p.a.Name == attribute.Cyclic {
			continue
		}
		curveChs = append(curveChs, valueChannel(CurveAttributes, attributeChannel(p.a, p.b)))
	}
	var m Mismatch
	if c.kA, c.kB, m = c.classes("curve values", curveChs, nc, nc); m != None {
		return m
	}

	np := c.a.PointCount()
	pointChs := []channel{valueChannel(Positions, positionChannel(np, c.a.Position, c.b.Position))}
	for _, p := range pairs(sa, sb, attribute.Point) {
		partner, paired := c.swap[p.a.Name]
		switch {
		case !paired:
			pointChs = append(pointChs, valueChannel(PointAttributes, attributeChannel(p.a, p.b)))
		case p.a.Name < partner:
			ra, _ := sa.Lookup(attribute.Point, partner)
			rb, _ := sb.Lookup(attribute.Point, partner)
			left, right := attributeChannel(p.a, p.b), attributeChannel(ra, rb)
			pointChs = append(pointChs, channel{
				name: p.a.Name + "+" + partner,
				kind: PointAttributes,
				classify: func(tol tolerance.Tolerance) ([]uint32, []uint32) {
					return fingerprint.ClassifyPaired(left, right, tol)
				},
			})
		}
	}
	if c.vA, c.vB, m = c.classes("point values", pointChs, np, np); m != None {
		return m
	}

	// A point also carries the class of its curve.
	owner := func(src CurvesSource, kc []uint32) []uint32 {
		out := make([]uint32, np)
		for p, k := range curveOf(src) {
			out[p] = kc[k]
		}
		return out
	}
	c.pA, c.pB = fingerprint.Combine(
		[][]uint32{c.vA, owner(c.a, c.kA)},
		[][]uint32{c.vB, owner(c.b, c.kB)},
		np, np)

	return None
}

// topology compares curve signatures: the canonical sequence of point value
// classes (rotations for cyclic curves, reversal when reversed curves are
// accepted) reports CurveTopology; the same key prefixed with the curve
// class reports CurveAttributes.
func (c *curvesCmp) topology() Mismatch {
	keys := func(pal *fingerprint.Palette, src CurvesSource, kc, vc []uint32) []uint32 {
		out := make([]uint32, src.CurveCount())
		for k := range out {
			start, size := src.PointRange(k)
			var class uint32
			if kc != nil {
				class = kc[k]
			}
			seq := canonical(vc[start:start+size], src.Cyclic(k), c.opts.ReversedCurves)
			out[k] = pal.Intern(append([]uint32{class}, seq...)...)
		}
		return out
	}
	for _, tier := range []struct {
		kind   Mismatch
		ka, kb []uint32
	}{
		{CurveTopology, nil, nil},
		{CurveAttributes, c.kA, c.kB},
	} {
		pal := fingerprint.NewPalette()
		if m := c.signatures("curve signatures", tier.kind, keys(pal, c.a, tier.ka, c.vA), keys(pal, c.b, tier.kb, c.vB)); m != None {
			return m
		}
	}
	return None
}

// adjacency links consecutive points of every curve, closing cyclic ones.
// Links are symmetric when reversed curves are accepted and directed
// (next/prev) otherwise.
func (c *curvesCmp) adjacency() [2]*fingerprint.Adjacency {
	labels := fingerprint.NewPalette()
	build := func(src CurvesSource, kc []uint32) *fingerprint.Adjacency {
		b := fingerprint.NewAdjacencyBuilder(src.PointCount())
		for k := 0; k < src.CurveCount(); k++ {
			start, size := src.PointRange(k)
			steps := size - 1
			if src.Cyclic(k) && size > 1 {
				steps = size
			}
			for i := 0; i < steps; i++ {
				p, q := start+i, start+(i+1)%size
				if c.opts.ReversedCurves {
					b.Link(p, q, labels.Intern(relCurveLink, kc[k]))
					continue
				}
				b.Arc(p, q, labels.Intern(relCurveNext, kc[k]))
				b.Arc(q, p, labels.Intern(relCurvePrev, kc[k]))
			}
		}
		return b.Build()
	}
	return [2]*fingerprint.Adjacency{build(c.a, c.kA), build(c.b, c.kB)}
}

// curveMatch is the B curve an A curve maps onto, with the alignments of
// its point sequence.
type curveMatch struct {
	curve int
	align []alignment
}

func (c *curvesCmp) verify(fwd []int) Mismatch {
	if m := c.samePositions(c.a.PointCount(), c.a.Position, c.b.Position, fwd); m != None {
		return m
	}
	matches, m := c.matchCurves(fwd)
	if m != None {
		return m
	}

	sa, sb := c.a.Attributes(), c.b.Attributes()
	pointAttrs := pairs(sa, sb, attribute.Point)
	reversed := make([]bool, c.a.CurveCount())
	for k, mt := range matches {
		start, size := c.a.PointRange(k)
		chosen, failName, failAt := -1, "", -1
		for ai, al := range mt.align {
			ok := true
			for p := start; p < start+size && ok; p++ {
				if name, differs := c.pointDiff(pointAttrs, p, fwd[p], al.reversed); differs {
					ok = false
					if failAt < 0 {
						failName, failAt = name, p
					}
				}
			}
			if ok {
				chosen = ai
				break
			}
		}
		if chosen < 0 {
			return c.fail(PointAttributes, failName, failAt)
		}
		reversed[k] = mt.align[chosen].reversed
	}

	curveAttrs := pairs(sa, sb, attribute.Curve)
	for k, mt := range matches {
		if name, differs := c.firstDiff(curveAttrs, k, mt.curve); differs {
			return c.fail(CurveAttributes, name, k)
		}
	}
	for k, mt := range matches {
		ka, kb := c.a.CustomKnots(k), c.b.CustomKnots(mt.curve)
		if len(ka) == 0 && len(kb) == 0 {
			continue
		}
		if reversed[k] {
			ka = mirrorKnots(ka)
		}
		if !c.tol.EqualSlice(ka, kb) {
			return c.fail(Knots, "", k)
		}
	}
	return None
}

// matchCurves finds, for every A curve, the B curve holding the image of
// its points and the alignments under which the sequences agree.
func (c *curvesCmp) matchCurves(fwd []int) ([]curveMatch, Mismatch) {
	ownerB := curveOf(c.b)
	used := make([]bool, c.b.CurveCount())
	out := make([]curveMatch, c.a.CurveCount())
	for k := range out {
		start, size := c.a.PointRange(k)
		target := -1
		if size == 0 {
			for g := range used {
				if _, gs := c.b.PointRange(g); !used[g] && gs == 0 {
					target = g
					break
				}
			}
		} else {
			target = ownerB[fwd[start]]
		}
		if target < 0 || used[target] {
			return nil, c.fail(CurveTopology, "", k)
		}
		startB, sizeB := c.b.PointRange(target)
		cyclic := c.a.Cyclic(k)
		if sizeB != size || c.b.Cyclic(target) != cyclic {
			return nil, c.fail(CurveTopology, "", k)
		}

		mapped := make([]int, size)
		for i := range mapped {
			mapped[i] = fwd[start+i]
		}
		loopB := make([]int, size)
		for i := range loopB {
			loopB[i] = startB + i
		}
		var align []alignment
		if size == 0 {
			align = []alignment{{}}
		}
		for _, al := range alignments(mapped, loopB, c.opts.ReversedCurves) {
			// Open curves keep their ends.
			if !cyclic && !(al.offset == 0 && !al.reversed) && !(al.offset == size-1 && al.reversed) {
				continue
			}
			align = append(align, al)
		}
		if len(align) == 0 {
			return nil, c.fail(CurveTopology, "", k)
		}
		used[target] = true
		out[k] = curveMatch{curve: target, align: align}
	}
	return out, None
}

// acceptPoint pairs points with equal positions and point attributes,
// the directional pairs compared straight or, when reversal is accepted,
// crosswise.
func (c *curvesCmp) acceptPoint() func(p, q int) bool {
	attrs := pairs(c.a.Attributes(), c.b.Attributes(), attribute.Point)
	return func(p, q int) bool {
		if !c.tol.EqualVec(c.a.Position(p), c.b.Position(q)) {
			return false
		}
		if _, differs := c.pointDiff(attrs, p, q, false); !differs {
			return true
		}
		if len(c.swap) == 0 {
			return false
		}
		_, differs := c.pointDiff(attrs, p, q, true)
		return !differs
	}
}

// pointDiff compares the point attributes of p in A and q in B. With
// reversed set the directional pairs are compared crosswise.
func (c *curvesCmp) pointDiff(attrs []attrPair, p, q int, reversed bool) (string, bool) {
	for _, ap := range attrs {
		other := ap.b
		if partner, ok := c.swap[ap.a.Name]; ok && reversed {
			other, _ = c.b.Attributes().Lookup(attribute.Point, partner)
		}
		if !c.tolFor(ap.a.Type).EqualSlice(ap.a.Value(p), other.Value(q)) {
			return ap.a.Name, true
		}
	}
	return "", false
}

// mirrorKnots returns the knot vector of the reversed curve:
// k'[i] = k[0] + k[n-1] - k[n-1-i].
func mirrorKnots(k []float64) []float64 {
	n := len(k)
	if n == 0 {
		return nil
	}
	out := slices.Clone(k)
	slices.Reverse(out)
	lo, hi := k[0], k[n-1]
	for i := range out {
		out[i] = lo + hi - out[i]
	}
	return out
}

package compare

import (
	"slices"

	"github.com/katalvlaran/geocmp/attribute"
	"github.com/katalvlaran/geocmp/bijection"
	"github.com/katalvlaran/geocmp/fingerprint"
)

// Relation tags that prefix adjacency labels.
const (
	relEdge uint32 = iota
	relCornerOf
	relVertexOf
	relNext
	relPrev
	relRing
	relNextVertex
	relPrevVertex
	relRingVertex
	relCurveNext
	relCurvePrev
	relCurveLink
	relAxis
)

var meshDomains = []attribute.Domain{attribute.Point, attribute.Edge, attribute.Face, attribute.Corner}

// Meshes compares two meshes and returns the first mismatch found, or None.
//
// Stages, each short-circuiting:
//  1. element counts (vertices, edges, faces, corners);
//  2. attribute schema;
//  3. per-channel class balance: positions, then vertex, edge, face and
//     corner attributes by name;
//  4. edge and face signatures over the value classes;
//  5. color refinement and bijection over the vertex-corner incidence graph;
//  6. verification of positions, attributes, edges and faces under the
//     bijection.
//
// Errors: ErrNilGeometry, ErrBadThreshold, ErrOptionViolation, or the
// context's error.
func Meshes(a, b MeshSource, threshold float64, opts ...Option) (Mismatch, error) {
	if a == nil || b == nil {
		return None, ErrNilGeometry
	}
	s, err := newSession("mesh", threshold, opts)
	if err != nil {
		return None, err
	}
	c := &meshCmp{session: s, a: a, b: b}

	return c.run()
}

type meshCmp struct {
	*session
	a, b MeshSource

	// value classes per domain
	vA, vB []uint32
	eA, eB []uint32
	fA, fB []uint32
	cA, cB []uint32
}

func (c *meshCmp) run() (Mismatch, error) {
	if m := c.counts(); m != None {
		return m, nil
	}
	if d, ok := attribute.SameSchema(c.a.Attributes(), c.b.Attributes(), meshDomains...); !ok {
		return c.fail(AttributeSchema, d.String(), -1), nil
	}
	if m := c.values(); m != None {
		return m, nil
	}
	if m := c.topology(); m != None {
		return m, nil
	}

	colA, colB, adjA, adjB := c.incidence()
	nv := c.a.VertexCount()
	res, m, err := c.correspond(VertexCorrespondence, colA, colB, adjA, adjB, valueSearch{
		accept: c.acceptNode(),
		verify: func(fwd []int) Mismatch { return c.verify(fwd[:nv]) },
	})
	if err != nil || m != None {
		return m, err
	}
	if m := c.verify(res.Forward[:nv]); m != None {
		return m, nil
	}
	if res.Outcome == bijection.Inconsistent {
		return c.fail(VertexCorrespondence, "", res.Source), nil
	}
	c.log.LogStage(c.ctx, "verify")

	return None, nil
}

func (c *meshCmp) counts() Mismatch {
	checks := []struct {
		kind Mismatch
		a, b int
	}{
		{NumVerts, c.a.VertexCount(), c.b.VertexCount()},
		{NumEdges, c.a.EdgeCount(), c.b.EdgeCount()},
		{NumFaces, c.a.FaceCount(), c.b.FaceCount()},
		{NumCorners, c.a.CornerCount(), c.b.CornerCount()},
	}
	for _, chk := range checks {
		if chk.a != chk.b {
			return c.fail(chk.kind, "", -1)
		}
	}
	return None
}

// values clusters every value channel and stores the combined classes.
func (c *meshCmp) values() Mismatch {
	sa, sb := c.a.Attributes(), c.b.Attributes()
	domain := func(d attribute.Domain, kind Mismatch, extra ...channel) []channel {
		chs := extra
		for _, p := range pairs(sa, sb, d) {
			chs = append(chs, valueChannel(kind, attributeChannel(p.a, p.b)))
		}
		return chs
	}

	nv := c.a.VertexCount()
	var m Mismatch
	pos := valueChannel(Positions, positionChannel(nv, c.a.Position, c.b.Position))
	if c.vA, c.vB, m = c.classes("vertex values", domain(attribute.Point, VertexAttributes, pos), nv, nv); m != None {
		return m
	}
	ne := c.a.EdgeCount()
	if c.eA, c.eB, m = c.classes("edge values", domain(attribute.Edge, EdgeAttributes), ne, ne); m != None {
		return m
	}
	nf := c.a.FaceCount()
	if c.fA, c.fB, m = c.classes("face values", domain(attribute.Face, FaceAttributes), nf, nf); m != None {
		return m
	}
	nc := c.a.CornerCount()
	if c.cA, c.cB, m = c.classes("corner values", domain(attribute.Corner, CornerAttributes), nc, nc); m != None {
		return m
	}
	return None
}

// topology compares local signatures in three tiers, each over the classes
// of the previous tier plus one more column, so a difference is reported at
// the first tier that sees it:
//  1. endpoint classes of edges, canonical vertex-class loops of faces
//     (EdgeTopology, FaceTopology);
//  2. plus the edge and face value classes (EdgeAttributes, FaceAttributes);
//  3. plus the corner value classes along each loop (CornerAttributes).
func (c *meshCmp) topology() Mismatch {
	edgeKeys := func(pal *fingerprint.Palette, src MeshSource, vc, ec []uint32) []uint32 {
		keys := make([]uint32, src.EdgeCount())
		for e := range keys {
			u, v := src.EdgeVertices(e)
			x, y := vc[u], vc[v]
			var class uint32
			if ec != nil {
				class = ec[e]
			}
			keys[e] = pal.Intern(class, min(x, y), max(x, y))
		}
		return keys
	}
	for _, tier := range []struct {
		kind   Mismatch
		ea, eb []uint32
	}{
		{EdgeTopology, nil, nil},
		{EdgeAttributes, c.eA, c.eB},
	} {
		pal := fingerprint.NewPalette()
		ka := edgeKeys(pal, c.a, c.vA, tier.ea)
		kb := edgeKeys(pal, c.b, c.vB, tier.eb)
		if m := c.signatures("edge signatures", tier.kind, ka, kb); m != None {
			return m
		}
	}

	faceKeys := func(pal, tokens *fingerprint.Palette, src MeshSource, vc, fc, cc []uint32) []uint32 {
		keys := make([]uint32, src.FaceCount())
		var loop []uint32
		for f := range keys {
			start, size := src.FaceCorners(f)
			loop = loop[:0]
			for k := start; k < start+size; k++ {
				var corner uint32
				if cc != nil {
					corner = cc[k]
				}
				loop = append(loop, tokens.Intern(vc[src.CornerVertex(k)], corner))
			}
			var class uint32
			if fc != nil {
				class = fc[f]
			}
			key := append([]uint32{class}, canonical(loop, true, c.opts.FlippedFaces)...)
			keys[f] = pal.Intern(key...)
		}
		return keys
	}
	for _, tier := range []struct {
		kind           Mismatch
		fa, fb, ca, cb []uint32
	}{
		{FaceTopology, nil, nil, nil, nil},
		{FaceAttributes, c.fA, c.fB, nil, nil},
		{CornerAttributes, c.fA, c.fB, c.cA, c.cB},
	} {
		pal, tokens := fingerprint.NewPalette(), fingerprint.NewPalette()
		ka := faceKeys(pal, tokens, c.a, c.vA, tier.fa, tier.ca)
		kb := faceKeys(pal, tokens, c.b, c.vB, tier.fb, tier.cb)
		if m := c.signatures("face signatures", tier.kind, ka, kb); m != None {
			return m
		}
	}
	return None
}

// Node kinds of the incidence graph.
const (
	nodeVertex uint32 = iota
	nodeCorner
)

// incidence builds the labeled vertex-corner graph of both meshes with
// shared palettes. Node v is vertex v and node nv+k is corner k.
//
// Edges link their vertices. Every corner links to its vertex and points at
// the vertices before and after it in its face, and the corners of a face
// form a directed cycle. With flipped faces accepted, before and after share
// one label and the cycle is symmetric. Winding lives only in the corner
// arcs: on a closed surface vertex arcs are symmetric under reflection.
func (c *meshCmp) incidence() (colA, colB []uint32, adjA, adjB *fingerprint.Adjacency) {
	nodes := fingerprint.NewPalette()
	labels := fingerprint.NewPalette()
	cornerOf, vertexOf := labels.Intern(relCornerOf), labels.Intern(relVertexOf)
	next, prev := labels.Intern(relNext), labels.Intern(relPrev)
	nextVert, prevVert := labels.Intern(relNextVertex), labels.Intern(relPrevVertex)
	if c.opts.FlippedFaces {
		next, prev = labels.Intern(relRing), labels.Intern(relRing)
		nextVert, prevVert = labels.Intern(relRingVertex), labels.Intern(relRingVertex)
	}

	build := func(src MeshSource, vc, ec, fc, cc []uint32) ([]uint32, *fingerprint.Adjacency) {
		nv := src.VertexCount()
		colors := make([]uint32, nv+src.CornerCount())
		for v := 0; v < nv; v++ {
			colors[v] = nodes.Intern(nodeVertex, vc[v])
		}
		b := fingerprint.NewAdjacencyBuilder(len(colors))
		for e := 0; e < src.EdgeCount(); e++ {
			u, v := src.EdgeVertices(e)
			b.Link(u, v, labels.Intern(relEdge, ec[e]))
		}
		for f := 0; f < src.FaceCount(); f++ {
			start, size := src.FaceCorners(f)
			for i := 0; i < size; i++ {
				k := start + i
				succ := start + (i+1)%size
				pred := start + (i+size-1)%size
				colors[nv+k] = nodes.Intern(nodeCorner, fc[f], cc[k])

				v := src.CornerVertex(k)
				b.Arc(v, nv+k, cornerOf)
				b.Arc(nv+k, v, vertexOf)
				b.Arc(nv+k, src.CornerVertex(succ), nextVert)
				b.Arc(nv+k, src.CornerVertex(pred), prevVert)
				b.Arc(nv+k, nv+succ, next)
				b.Arc(nv+succ, nv+k, prev)
			}
		}
		return colors, b.Build()
	}
	colA, adjA = build(c.a, c.vA, c.eA, c.fA, c.cA)
	colB, adjB = build(c.b, c.vB, c.eB, c.fB, c.cB)
	return colA, colB, adjA, adjB
}

// faceOf maps every corner to its face.
func faceOf(src MeshSource) []int {
	out := make([]int, src.CornerCount())
	for f := 0; f < src.FaceCount(); f++ {
		start, size := src.FaceCorners(f)
		for k := start; k < start+size; k++ {
			out[k] = f
		}
	}
	return out
}

// acceptNode pairs incidence nodes whose own values agree: position and
// point attributes for vertices, corner and owning face attributes for
// corners.
func (c *meshCmp) acceptNode() func(a, b int) bool {
	nv := c.a.VertexCount()
	sa, sb := c.a.Attributes(), c.b.Attributes()
	points := pairs(sa, sb, attribute.Point)
	faces := pairs(sa, sb, attribute.Face)
	corners := pairs(sa, sb, attribute.Corner)
	ownerA, ownerB := faceOf(c.a), faceOf(c.b)

	return func(a, b int) bool {
		if (a < nv) != (b < nv) {
			return false
		}
		if a < nv {
			if !c.tol.EqualVec(c.a.Position(a), c.b.Position(b)) {
				return false
			}
			_, differs := c.firstDiff(points, a, b)
			return !differs
		}
		ka, kb := a-nv, b-nv
		if _, differs := c.firstDiff(corners, ka, kb); differs {
			return false
		}
		_, differs := c.firstDiff(faces, ownerA[ka], ownerB[kb])
		return !differs
	}
}

// verify re-checks values exactly and maps edges and faces under fwd.
func (c *meshCmp) verify(fwd []int) Mismatch {
	if m := c.samePositions(c.a.VertexCount(), c.a.Position, c.b.Position, fwd); m != None {
		return m
	}
	sa, sb := c.a.Attributes(), c.b.Attributes()
	if m := c.sameValues(VertexAttributes, pairs(sa, sb, attribute.Point), fwd); m != None {
		return m
	}
	if m := c.verifyEdges(fwd, pairs(sa, sb, attribute.Edge)); m != None {
		return m
	}
	return c.verifyFaces(fwd, pairs(sa, sb, attribute.Face), pairs(sa, sb, attribute.Corner))
}

// firstDiff returns the name of the first attribute whose values of i and j
// differ.
func (s *session) firstDiff(attrs []attrPair, i, j int) (string, bool) {
	for _, p := range attrs {
		if !s.tolFor(p.a.Type).EqualSlice(p.a.Value(i), p.b.Value(j)) {
			return p.a.Name, true
		}
	}
	return "", false
}

func edgeKey(u, v int) uint64 {
	return uint64(min(u, v))<<32 | uint64(max(u, v))
}

// verifyEdges matches every A edge to an unused B edge with the mapped
// endpoints and equal attributes.
func (c *meshCmp) verifyEdges(fwd []int, attrs []attrPair) Mismatch {
	index := make(map[uint64][]int, c.b.EdgeCount())
	for g := 0; g < c.b.EdgeCount(); g++ {
		u, v := c.b.EdgeVertices(g)
		k := edgeKey(u, v)
		index[k] = append(index[k], g)
	}
	used := make([]bool, c.b.EdgeCount())
	for e := 0; e < c.a.EdgeCount(); e++ {
		u, v := c.a.EdgeVertices(e)
		found, diff := -1, ""
		for _, g := range index[edgeKey(fwd[u], fwd[v])] {
			if used[g] {
				continue
			}
			name, differs := c.firstDiff(attrs, e, g)
			if !differs {
				found = g
				break
			}
			if diff == "" {
				diff = name
			}
		}
		switch {
		case found >= 0:
			used[found] = true
		case diff != "":
			return c.fail(EdgeAttributes, diff, e)
		default:
			return c.fail(EdgeTopology, "", e)
		}
	}
	return None
}

// alignment maps position i of one loop to position (offset ± i) mod n of
// another.
type alignment struct {
	offset   int
	reversed bool
}

func (al alignment) at(i, n int) int {
	if al.reversed {
		return ((al.offset-i)%n + n) % n
	}
	return (al.offset + i) % n
}

// alignments lists the rotations (and reflections when mirror is set) that
// turn loop b into loop a.
func alignments(a, b []int, mirror bool) []alignment {
	n := len(a)
	if n != len(b) || n == 0 {
		return nil
	}
	var out []alignment
	for r := 0; r < n; r++ {
		for _, rev := range []bool{false, true} {
			if rev && !mirror {
				continue
			}
			al := alignment{offset: r, reversed: rev}
			ok := true
			for i := 0; i < n && ok; i++ {
				ok = a[i] == b[al.at(i, n)]
			}
			if ok {
				out = append(out, al)
			}
		}
	}
	return out
}

// verifyFaces matches every A face to an unused B face whose corner loop is
// the mapped loop up to rotation, with equal face and corner attributes.
func (c *meshCmp) verifyFaces(fwd []int, faceAttrs, cornerAttrs []attrPair) Mismatch {
	sets := fingerprint.NewPalette()
	setKey := func(loop []int) uint32 {
		sorted := slices.Clone(loop)
		slices.Sort(sorted)
		key := make([]uint32, len(sorted))
		for i, v := range sorted {
			key[i] = uint32(v)
		}
		return sets.Intern(key...)
	}
	loopOf := func(src MeshSource, f int, mapTo []int) []int {
		start, size := src.FaceCorners(f)
		loop := make([]int, size)
		for i := range loop {
			v := src.CornerVertex(start + i)
			if mapTo != nil {
				v = mapTo[v]
			}
			loop[i] = v
		}
		return loop
	}

	nf := c.b.FaceCount()
	loopsB := make([][]int, nf)
	index := make(map[uint32][]int, nf)
	for g := 0; g < nf; g++ {
		loopsB[g] = loopOf(c.b, g, nil)
		k := setKey(loopsB[g])
		index[k] = append(index[k], g)
	}
	used := make([]bool, nf)

	for f := 0; f < c.a.FaceCount(); f++ {
		loop := loopOf(c.a, f, fwd)
		startA, size := c.a.FaceCorners(f)
		found := -1
		failKind, failName := FaceTopology, ""
	search:
		for _, g := range index[setKey(loop)] {
			if used[g] {
				continue
			}
			startB, _ := c.b.FaceCorners(g)
			for _, al := range alignments(loop, loopsB[g], c.opts.FlippedFaces) {
				if name, differs := c.firstDiff(faceAttrs, f, g); differs {
					if failKind == FaceTopology {
						failKind, failName = FaceAttributes, name
					}
					continue
				}
				cornerOK := true
				for i := 0; i < size && cornerOK; i++ {
					name, differs := c.firstDiff(cornerAttrs, startA+i, startB+al.at(i, size))
					if differs {
						cornerOK = false
						if failKind == FaceTopology {
							failKind, failName = CornerAttributes, name
						}
					}
				}
				if cornerOK {
					found = g
					break search
				}
			}
		}
		if found < 0 {
			return c.fail(failKind, failName, f)
		}
		used[found] = true
	}
	return None
}

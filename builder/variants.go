// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// variants.go — renumbered and defective copies of existing geometry.
//
// Design:
//   • Every variant is expressed as a plan (element maps, flips, rotations,
//     offsets) applied by one routine per container, so attribute carrying
//     is written once.
//   • Equivalent variants (RenumberMesh, ShuffleMesh, ShuffleCurves,
//     FlipLattice) only reorder elements; the comparator must report no
//     mismatch between input and output.
//   • Defect variants (Displace, MovePoint, DropFace, FlipFaces) change
//     exactly one property.
//
// Complexity: O(elements + attribute values) for every variant.

package builder

import (
	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/attribute"
	"github.com/katalvlaran/geocmp/curves"
	"github.com/katalvlaran/geocmp/lattice"
	"github.com/katalvlaran/geocmp/mesh"
)

// meshPlan describes a mesh copy. Slices indexed by the new element hold
// the old element; vertex is indexed by the old vertex.
type meshPlan struct {
	vertex  []int             // old vertex -> new vertex
	edges   []int             // new edge -> old edge
	flip    []bool            // new edge: swap endpoints
	faces   []int             // new face -> old face
	rotate  []int             // new face: old corner offset of the first corner
	reverse []bool            // new face: reverse the winding
	offset  map[int]r3.Vector // old vertex -> displacement
}

func identityPlan(m *mesh.Mesh) meshPlan {
	return meshPlan{
		vertex: identity(m.VertexCount()),
		edges:  identity(m.EdgeCount()),
		faces:  identity(m.FaceCount()),
	}
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// isPermutation reports whether p holds every value of 0..n-1 once.
func isPermutation(p []int, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, x := range p {
		if x < 0 || x >= n || seen[x] {
			return false
		}
		seen[x] = true
	}
	return true
}

func applyMeshPlan(method string, m *mesh.Mesh, p meshPlan) (*mesh.Mesh, error) {
	nv := m.VertexCount()
	vSrc := make([]int, nv)
	for old, nw := range p.vertex {
		vSrc[nw] = old
	}
	pos := make([]r3.Vector, nv)
	for nw, old := range vSrc {
		pos[nw] = m.Position(old).Add(p.offset[old])
	}

	edges := make([][2]int, len(p.edges))
	for i, old := range p.edges {
		u, v := m.EdgeVertices(old)
		u, v = p.vertex[u], p.vertex[v]
		if p.flip != nil && p.flip[i] {
			u, v = v, u
		}
		edges[i] = [2]int{u, v}
	}

	faces := make([][]int, len(p.faces))
	cSrc := make([]int, 0, m.CornerCount())
	for i, old := range p.faces {
		start, size := m.FaceCorners(old)
		r := 0
		if p.rotate != nil {
			r = p.rotate[i] % size
		}
		step := 1
		if p.reverse != nil && p.reverse[i] {
			step = size - 1
		}
		loop := make([]int, size)
		for k := range loop {
			c := start + (r+k*step)%size
			loop[k] = p.vertex[m.CornerVertex(c)]
			cSrc = append(cSrc, c)
		}
		faces[i] = loop
	}

	out, err := mesh.New(pos, edges, faces)
	if err != nil {
		return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
	}
	sources := []struct {
		domain attribute.Domain
		src    []int
	}{
		{attribute.Point, vSrc},
		{attribute.Edge, p.edges},
		{attribute.Face, p.faces},
		{attribute.Corner, cSrc},
	}
	for _, s := range sources {
		for _, a := range m.Attributes().On(s.domain) {
			g, err := gather(a, s.src, nil)
			if err == nil {
				err = out.SetAttribute(g)
			}
			if err != nil {
				return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
			}
		}
	}
	return out, nil
}

// gather builds a copy of a whose element i holds the value of element
// src[i]. Where alt is non-nil and alt[i] is set, the value is read from
// the attribute alt[i] instead.
func gather(a *attribute.Attribute, src []int, alt []*attribute.Attribute) (*attribute.Attribute, error) {
	flat := make([]float64, 0, len(src)*a.Type.Width())
	for i, s := range src {
		from := a
		if alt != nil && alt[i] != nil {
			from = alt[i]
		}
		flat = append(flat, from.Value(s)...)
	}
	return attribute.New(a.Name, a.Domain, a.Type, flat)
}

// RenumberMesh returns a copy of m whose vertex v is renamed perm[v]. Edge
// and face order are kept.
//
// Errors: ErrBadPermutation if perm is not a permutation of the vertices.
func RenumberMesh(m *mesh.Mesh, perm []int) (*mesh.Mesh, error) {
	if !isPermutation(perm, m.VertexCount()) {
		return nil, builderErrorf(MethodRenumberMesh, ErrBadPermutation, "len=%d vertices=%d", len(perm), m.VertexCount())
	}
	p := identityPlan(m)
	p.vertex = append([]int(nil), perm...)
	return applyMeshPlan(MethodRenumberMesh, m, p)
}

// ShuffleMesh returns an equivalent copy of m with vertices, edges and
// faces permuted at random, edge endpoints swapped at random and face loops
// rotated to a random first corner. Winding is kept.
//
// Errors: ErrNeedRandSource without WithSeed or WithRand.
func ShuffleMesh(m *mesh.Mesh, opts ...BuilderOption) (*mesh.Mesh, error) {
	cfg := newBuilderConfig(opts...)
	if cfg.rng == nil {
		return nil, builderErrorf(MethodShuffleMesh, ErrNeedRandSource, "no random source")
	}
	rng := cfg.rng
	p := meshPlan{
		vertex: rng.Perm(m.VertexCount()),
		edges:  rng.Perm(m.EdgeCount()),
		faces:  rng.Perm(m.FaceCount()),
	}
	p.flip = make([]bool, len(p.edges))
	for i := range p.flip {
		p.flip[i] = rng.Intn(2) == 1
	}
	p.rotate = make([]int, len(p.faces))
	for i, old := range p.faces {
		_, size := m.FaceCorners(old)
		p.rotate[i] = rng.Intn(size)
	}
	return applyMeshPlan(MethodShuffleMesh, m, p)
}

// Displace returns a copy of m with vertex v moved by d.
//
// Errors: ErrIndex if v is out of range.
func Displace(m *mesh.Mesh, v int, d r3.Vector) (*mesh.Mesh, error) {
	if v < 0 || v >= m.VertexCount() {
		return nil, builderErrorf(MethodDisplace, ErrIndex, "vertex %d of %d", v, m.VertexCount())
	}
	p := identityPlan(m)
	p.offset = map[int]r3.Vector{v: d}
	return applyMeshPlan(MethodDisplace, m, p)
}

// DropFace returns a copy of m without face f and its corners. Vertices and
// edges are kept.
//
// Errors: ErrIndex if f is out of range.
func DropFace(m *mesh.Mesh, f int) (*mesh.Mesh, error) {
	if f < 0 || f >= m.FaceCount() {
		return nil, builderErrorf(MethodDropFace, ErrIndex, "face %d of %d", f, m.FaceCount())
	}
	p := identityPlan(m)
	p.faces = append(p.faces[:f:f], p.faces[f+1:]...)
	return applyMeshPlan(MethodDropFace, m, p)
}

// FlipFaces returns a copy of m with every face loop reversed. Each face
// keeps its first corner.
func FlipFaces(m *mesh.Mesh) (*mesh.Mesh, error) {
	p := identityPlan(m)
	p.reverse = make([]bool, m.FaceCount())
	for i := range p.reverse {
		p.reverse[i] = true
	}
	return applyMeshPlan(MethodFlipFaces, m, p)
}

// curvePlan describes a curve network copy, indexed by the new curve.
type curvePlan struct {
	order   []int             // new curve -> old curve
	reverse []bool            // traverse the old curve backwards
	rotate  []int             // cyclic curves: old offset of the first point
	offset  map[int]r3.Vector // old point -> displacement
}

func applyCurvePlan(method string, c *curves.Curves, p curvePlan) (*curves.Curves, error) {
	var (
		pSrc  []int
		pRev  []bool
		sizes = make([]int, len(p.order))
	)
	for i, old := range p.order {
		start, size := c.PointRange(old)
		sizes[i] = size
		r := 0
		if p.rotate != nil && size > 0 {
			r = p.rotate[i] % size
		}
		rev := p.reverse != nil && p.reverse[i]
		for k := 0; k < size; k++ {
			j := (r + k) % size
			if rev {
				j = (r - k + size) % size
				if !c.Cyclic(old) {
					j = size - 1 - k
				}
			}
			pSrc = append(pSrc, start+j)
			pRev = append(pRev, rev)
		}
	}
	pos := make([]r3.Vector, len(pSrc))
	for i, s := range pSrc {
		pos[i] = c.Position(s).Add(p.offset[s])
	}
	out, err := curves.New(pos, sizes)
	if err != nil {
		return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
	}

	set := c.Attributes()
	attrs := make([]*attribute.Attribute, 0, set.Len())
	for _, a := range set.On(attribute.Point) {
		// Handle pairs trade places on reversed curves.
		var alt []*attribute.Attribute
		for _, pair := range attribute.DirectionalPairs {
			partner := ""
			switch a.Name {
			case pair.Left:
				partner = pair.Right
			case pair.Right:
				partner = pair.Left
			}
			other, ok := set.Lookup(attribute.Point, partner)
			if partner == "" || !ok {
				continue
			}
			alt = make([]*attribute.Attribute, len(pSrc))
			for i, rev := range pRev {
				if rev {
					alt[i] = other
				}
			}
		}
		g, err := gather(a, pSrc, alt)
		if err != nil {
			return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
		}
		attrs = append(attrs, g)
	}
	for _, a := range set.On(attribute.Curve) {
		g, err := gather(a, p.order, nil)
		if err != nil {
			return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
		}
		attrs = append(attrs, g)
	}
	for _, a := range attrs {
		if err = out.SetAttribute(a); err != nil {
			return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
		}
	}

	for i, old := range p.order {
		knots := c.CustomKnots(old)
		if knots == nil {
			continue
		}
		if p.reverse != nil && p.reverse[i] {
			knots = mirrorKnots(knots)
		}
		if err = out.SetCustomKnots(i, knots); err != nil {
			return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
		}
	}
	return out, nil
}

// mirrorKnots returns the knot vector of the reversed curve:
// k'[i] = k[0] + k[n-1] - k[n-1-i].
func mirrorKnots(k []float64) []float64 {
	n := len(k)
	out := make([]float64, n)
	for i := range out {
		out[i] = k[0] + k[n-1] - k[n-1-i]
	}
	return out
}

// ShuffleCurves returns an equivalent copy of c with curves permuted at
// random, each curve reversed with probability one half and each cyclic
// curve rotated to a random first point. Reversed curves swap their handle
// pairs and mirror their custom knots.
//
// Errors: ErrNeedRandSource without WithSeed or WithRand.
func ShuffleCurves(c *curves.Curves, opts ...BuilderOption) (*curves.Curves, error) {
	cfg := newBuilderConfig(opts...)
	if cfg.rng == nil {
		return nil, builderErrorf(MethodShuffleCurves, ErrNeedRandSource, "no random source")
	}
	rng := cfg.rng
	p := curvePlan{order: rng.Perm(c.CurveCount())}
	p.reverse = make([]bool, len(p.order))
	p.rotate = make([]int, len(p.order))
	for i, old := range p.order {
		p.reverse[i] = rng.Intn(2) == 1
		if _, size := c.PointRange(old); c.Cyclic(old) {
			p.rotate[i] = rng.Intn(size)
		}
	}
	return applyCurvePlan(MethodShuffleCurves, c, p)
}

// MovePoint returns a copy of c with point i moved by d.
//
// Errors: ErrIndex if i is out of range.
func MovePoint(c *curves.Curves, i int, d r3.Vector) (*curves.Curves, error) {
	if i < 0 || i >= c.PointCount() {
		return nil, builderErrorf(MethodMovePoint, ErrIndex, "point %d of %d", i, c.PointCount())
	}
	p := curvePlan{order: identity(c.CurveCount()), offset: map[int]r3.Vector{i: d}}
	return applyCurvePlan(MethodMovePoint, c, p)
}

// FlipLattice returns a copy of l with the given axis (0=U, 1=V, 2=W)
// traversed backwards.
//
// Errors: ErrIndex for an axis outside 0..2.
func FlipLattice(l *lattice.Lattice, axis int) (*lattice.Lattice, error) {
	if axis < 0 || axis > 2 {
		return nil, builderErrorf(MethodFlipLattice, ErrIndex, "axis %d", axis)
	}
	var res lattice.Resolution
	res[0], res[1], res[2] = l.Resolution()
	n := res.Points()
	pos := make([]r3.Vector, n)
	weights := make([]float64, n)
	for i := range pos {
		c := res.Coordinate(i)
		c[axis] = res[axis] - 1 - c[axis]
		src := res.Index(c)
		pos[i], weights[i] = l.Position(src), l.Weight(src)
	}
	out, err := lattice.New(res, pos, weights)
	if err != nil {
		return nil, builderErrorf(MethodFlipLattice, ErrConstructFailed, "%v", err)
	}
	return out, nil
}

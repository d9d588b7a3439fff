package mesh

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/attribute"
)

// Sentinel errors for mesh construction.
var (
	// ErrVertexIndex indicates a reference to a vertex index out of range.
	ErrVertexIndex = errors.New("mesh: vertex index out of range")

	// ErrDegenerateEdge indicates an edge whose endpoints coincide.
	ErrDegenerateEdge = errors.New("mesh: edge connects a vertex to itself")

	// ErrFaceTooSmall indicates a face with fewer than three corners.
	ErrFaceTooSmall = errors.New("mesh: face needs at least three corners")

	// ErrDomain indicates an attribute on a domain meshes do not store.
	ErrDomain = errors.New("mesh: unsupported attribute domain")
)

// Mesh is a polygon mesh with explicit edges.
type Mesh struct {
	positions   []r3.Vector
	edges       [][2]int
	faceOffsets []int
	cornerVerts []int
	attrs       *attribute.Set
}

// New builds a mesh from positions, edges and face loops. Inputs are copied.
// Edges are not derived from faces; use FromFaces for that.
func New(positions []r3.Vector, edges [][2]int, faces [][]int) (*Mesh, error) {
	n := len(positions)
	m := &Mesh{
		positions:   append([]r3.Vector(nil), positions...),
		edges:       make([][2]int, len(edges)),
		faceOffsets: make([]int, 1, len(faces)+1),
		attrs:       attribute.NewSet(),
	}
	for i, e := range edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return nil, fmt.Errorf("%w: edge %d = %v", ErrVertexIndex, i, e)
		}
		if e[0] == e[1] {
			return nil, fmt.Errorf("%w: edge %d", ErrDegenerateEdge, i)
		}
		m.edges[i] = e
	}
	for f, loop := range faces {
		if len(loop) < 3 {
			return nil, fmt.Errorf("%w: face %d has %d", ErrFaceTooSmall, f, len(loop))
		}
		for _, v := range loop {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("%w: face %d corner vertex %d", ErrVertexIndex, f, v)
			}
			m.cornerVerts = append(m.cornerVerts, v)
		}
		m.faceOffsets = append(m.faceOffsets, len(m.cornerVerts))
	}

	return m, nil
}

// FromFaces builds a mesh whose edge list is derived from the face loops:
// one edge per unordered consecutive vertex pair, in first-seen order.
func FromFaces(positions []r3.Vector, faces [][]int) (*Mesh, error) {
	seen := make(map[[2]int]struct{})
	var edges [][2]int
	for _, loop := range faces {
		for i := range loop {
			u, v := loop[i], loop[(i+1)%len(loop)]
			key := [2]int{min(u, v), max(u, v)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, [2]int{u, v})
		}
	}
	return New(positions, edges, faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.positions) }

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int { return len(m.edges) }

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int { return len(m.faceOffsets) - 1 }

// CornerCount returns the number of face corners.
func (m *Mesh) CornerCount() int { return len(m.cornerVerts) }

// Position returns the position of vertex v.
func (m *Mesh) Position(v int) r3.Vector { return m.positions[v] }

// EdgeVertices returns the two endpoints of edge e in stored order.
func (m *Mesh) EdgeVertices(e int) (int, int) { return m.edges[e][0], m.edges[e][1] }

// FaceCorners returns the corner range of face f.
func (m *Mesh) FaceCorners(f int) (start, size int) {
	return m.faceOffsets[f], m.faceOffsets[f+1] - m.faceOffsets[f]
}

// CornerVertex returns the vertex of corner c.
func (m *Mesh) CornerVertex(c int) int { return m.cornerVerts[c] }

// Attributes returns the attribute set. Callers must treat it as read-only;
// use SetAttribute to add data.
func (m *Mesh) Attributes() *attribute.Set { return m.attrs }

// Positions returns a copy of all vertex positions.
func (m *Mesh) Positions() []r3.Vector {
	return append([]r3.Vector(nil), m.positions...)
}

// Edges returns a copy of the edge list.
func (m *Mesh) Edges() [][2]int {
	return append([][2]int(nil), m.edges...)
}

// Faces returns a copy of every face loop.
func (m *Mesh) Faces() [][]int {
	out := make([][]int, m.FaceCount())
	for f := range out {
		start, size := m.FaceCorners(f)
		out[f] = append([]int(nil), m.cornerVerts[start:start+size]...)
	}
	return out
}

// domainSize returns the element count of a mesh domain.
func (m *Mesh) domainSize(d attribute.Domain) (int, bool) {
	switch d {
	case attribute.Point:
		return m.VertexCount(), true
	case attribute.Edge:
		return m.EdgeCount(), true
	case attribute.Face:
		return m.FaceCount(), true
	case attribute.Corner:
		return m.CornerCount(), true
	default:
		return 0, false
	}
}

// SetAttribute adds attr after checking its domain and element count.
func (m *Mesh) SetAttribute(attr *attribute.Attribute) error {
	size, ok := m.domainSize(attr.Domain)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDomain, attr.Domain)
	}
	if attr.Len() != size {
		return fmt.Errorf("%w: %s/%s has %d elements, want %d",
			attribute.ErrDomainSize, attr.Domain, attr.Name, attr.Len(), size)
	}
	return m.attrs.Add(attr)
}

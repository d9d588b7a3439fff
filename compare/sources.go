package compare

import (
	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/attribute"
)

// MeshSource is the read-only view of a mesh. Corners of face f are
// start..start+size-1 in winding order.
type MeshSource interface {
	VertexCount() int
	EdgeCount() int
	FaceCount() int
	CornerCount() int
	Position(v int) r3.Vector
	EdgeVertices(e int) (int, int)
	FaceCorners(f int) (start, size int)
	CornerVertex(c int) int
	Attributes() *attribute.Set
}

// CurvesSource is the read-only view of a curve network. Points of curve c
// are start..start+size-1 in curve order.
type CurvesSource interface {
	PointCount() int
	CurveCount() int
	PointRange(c int) (start, size int)
	Position(p int) r3.Vector
	Cyclic(c int) bool
	CustomKnots(c int) []float64
	Attributes() *attribute.Set
}

// LatticeSource is the read-only view of a lattice. Point (u, v, w) has
// index u + v·U + w·U·V.
type LatticeSource interface {
	Resolution() (u, v, w int)
	Position(p int) r3.Vector
	Weight(p int) float64
}

// Package mesh provides a minimal polygon mesh container: vertex positions,
// an explicit undirected edge list, faces stored as offsets into a flat
// corner array, and generic attributes on the point, edge, face and corner
// domains.
//
// A Mesh is immutable after construction except through SetAttribute, and
// is safe for concurrent readers. It satisfies compare.MeshSource.
//
// Layout:
//
//	positions   []r3.Vector   // vertex → position
//	edges       [][2]int      // edge   → (v1, v2), unordered
//	faceOffsets []int         // face f spans corners [faceOffsets[f], faceOffsets[f+1])
//	cornerVerts []int         // corner → vertex
//
// Errors:
//
//	ErrVertexIndex    - an edge or corner references a missing vertex.
//	ErrDegenerateEdge - an edge connects a vertex to itself.
//	ErrFaceTooSmall   - a face has fewer than three corners.
//	ErrDomain         - an attribute targets a domain meshes do not have.
package mesh

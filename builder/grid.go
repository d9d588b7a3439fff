// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// grid.go — planar quad sheets and the sample mesh attributes.
//
// Layout:
//   • Vertex (r, c) has index r*(cols+1)+c and unit-space position
//     (c - cols/2, r - rows/2, 0).
//   • Face (r, c) has index r*cols+c and loop (r,c) → (r,c+1) →
//     (r+1,c+1) → (r+1,c), counter-clockwise seen from +Z.

package builder

import (
	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/attribute"
	"github.com/katalvlaran/geocmp/mesh"
)

// Grid builds a rows×cols sheet of quads in the XY plane.
//
// Errors: ErrBadSize if rows or cols is below MinGridCells.
// Complexity: O(rows*cols).
func Grid(rows, cols int, opts ...BuilderOption) (*mesh.Mesh, error) {
	if rows < MinGridCells || cols < MinGridCells {
		return nil, builderErrorf(MethodGrid, ErrBadSize, "rows=%d cols=%d", rows, cols)
	}
	cfg := newBuilderConfig(opts...)
	w := cols + 1
	var s solid
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			s.verts = append(s.verts, r3.Vector{
				X: float64(c) - float64(cols)/2,
				Y: float64(r) - float64(rows)/2,
			})
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := r*w + c
			s.faces = append(s.faces, []int{v, v + 1, v + w + 1, v + w})
		}
	}
	return buildMesh(MethodGrid, cfg, s)
}

// Sample attribute names attached by WithAttributes.
const (
	AttrHeight   = "height"   // vertex Float: position Z
	AttrLength   = "length"   // edge Float: endpoint distance
	AttrMaterial = "material" // face Int32: face index mod 3
	AttrUV       = "uv"       // corner Float2: (k/size, 0.5) for corner k of a face
)

// attachMeshAttributes adds one sample attribute on every mesh domain.
func attachMeshAttributes(m *mesh.Mesh) error {
	heights := make([]float64, m.VertexCount())
	for v := range heights {
		heights[v] = m.Position(v).Z
	}
	lengths := make([]float64, m.EdgeCount())
	for e := range lengths {
		u, v := m.EdgeVertices(e)
		lengths[e] = m.Position(u).Sub(m.Position(v)).Norm()
	}
	materials := make([]int, m.FaceCount())
	uv := make([]float64, 0, 2*m.CornerCount())
	for f := range materials {
		materials[f] = f % 3
		_, size := m.FaceCorners(f)
		for k := 0; k < size; k++ {
			uv = append(uv, float64(k)/float64(size), 0.5)
		}
	}

	h, err := attribute.NewFloat(AttrHeight, attribute.Point, heights)
	if err != nil {
		return err
	}
	l, err := attribute.NewFloat(AttrLength, attribute.Edge, lengths)
	if err != nil {
		return err
	}
	mat, err := attribute.NewInt(AttrMaterial, attribute.Face, materials)
	if err != nil {
		return err
	}
	c, err := attribute.New(AttrUV, attribute.Corner, attribute.Float2, uv)
	if err != nil {
		return err
	}
	for _, a := range []*attribute.Attribute{h, l, mat, c} {
		if err = m.SetAttribute(a); err != nil {
			return err
		}
	}
	return nil
}

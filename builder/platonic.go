// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// platonic.go — the five regular solids as polygon meshes.
//
// Design:
//   • Tetrahedron, cube and octahedron come from literal coordinates and
//     face lists.
//   • The icosahedron faces are every triple of mutually adjacent vertices
//     (pairwise distance equals the edge length).
//   • The dodecahedron is the dual of the icosahedron: one vertex per
//     icosahedron face centroid, one pentagon per icosahedron vertex.
//   • Every face is wound counter-clockwise seen from outside; edges are
//     derived from the faces in first-seen order.
//
// Determinism:
//   • Vertex and face order are fixed; no randomness is involved.

package builder

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/geocmp/mesh"
)

// PlatonicName enumerates the five Platonic solids.
type PlatonicName int

// Enum values (stable ordering).
const (
	Tetrahedron  PlatonicName = iota // V=4,  E=6,  F=4
	Cube                             // V=8,  E=12, F=6
	Octahedron                       // V=6,  E=12, F=8
	Dodecahedron                     // V=20, E=30, F=12
	Icosahedron                      // V=12, E=30, F=20
)

// String returns the solid name.
func (p PlatonicName) String() string {
	switch p {
	case Tetrahedron:
		return "Tetrahedron"
	case Cube:
		return "Cube"
	case Octahedron:
		return "Octahedron"
	case Dodecahedron:
		return "Dodecahedron"
	case Icosahedron:
		return "Icosahedron"
	default:
		return "Unknown"
	}
}

// solid is a unit-space vertex list with face loops.
type solid struct {
	verts []r3.Vector
	faces [][]int
}

func tetrahedron() solid {
	return solid{
		verts: []r3.Vector{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}},
		faces: [][]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}},
	}
}

// cube numbers vertex i by its sign bits: bit 0 is X, bit 1 is Y, bit 2 is Z.
func cube() solid {
	verts := make([]r3.Vector, 8)
	for i := range verts {
		verts[i] = r3.Vector{X: sign(i & 1), Y: sign(i & 2), Z: sign(i & 4)}
	}
	return solid{
		verts: verts,
		faces: [][]int{
			{0, 2, 6, 4}, {1, 3, 7, 5}, // X = -1, +1
			{0, 1, 5, 4}, {2, 3, 7, 6}, // Y = -1, +1
			{0, 1, 3, 2}, {4, 5, 7, 6}, // Z = -1, +1
		},
	}
}

func sign(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}

func octahedron() solid {
	s := solid{verts: []r3.Vector{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}}
	for _, x := range []int{0, 1} {
		for _, y := range []int{2, 3} {
			for _, z := range []int{4, 5} {
				s.faces = append(s.faces, []int{x, y, z})
			}
		}
	}
	return s
}

func icosahedron() solid {
	phi := (1 + math.Sqrt(5)) / 2
	var s solid
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-phi, phi} {
			s.verts = append(s.verts,
				r3.Vector{X: 0, Y: a, Z: b},
				r3.Vector{X: a, Y: b, Z: 0},
				r3.Vector{X: b, Y: 0, Z: a},
			)
		}
	}
	// Edge length is 2.
	adjacent := func(i, j int) bool {
		return math.Abs(s.verts[i].Sub(s.verts[j]).Norm2()-4) < 1e-9
	}
	n := len(s.verts)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !adjacent(i, j) {
				continue
			}
			for k := j + 1; k < n; k++ {
				if adjacent(i, k) && adjacent(j, k) {
					s.faces = append(s.faces, []int{i, j, k})
				}
			}
		}
	}
	s.orient()
	return s
}

func dodecahedron() solid {
	ico := icosahedron()
	var s solid
	for _, f := range ico.faces {
		s.verts = append(s.verts, centroid(ico.verts, f))
	}
	// arc maps a directed icosahedron edge to the face that holds it.
	arc := make(map[[2]int]int, 3*len(ico.faces))
	for fi, f := range ico.faces {
		for k := range f {
			arc[[2]int{f[k], f[(k+1)%len(f)]}] = fi
		}
	}
	for v := range ico.verts {
		start := -1
		for fi, f := range ico.faces {
			if indexOf(f, v) >= 0 {
				start = fi
				break
			}
		}
		// Walk the faces around v counter-clockwise: after face (v, a, b)
		// comes the face holding the directed edge v→b.
		loop := []int{start}
		for cur := start; ; {
			f := ico.faces[cur]
			b := f[(indexOf(f, v)+2)%3]
			cur = arc[[2]int{v, b}]
			if cur == start {
				break
			}
			loop = append(loop, cur)
		}
		s.faces = append(s.faces, loop)
	}
	s.orient()
	return s
}

func indexOf(s []int, x int) int {
	for i, y := range s {
		if y == x {
			return i
		}
	}
	return -1
}

func centroid(verts []r3.Vector, loop []int) r3.Vector {
	var c r3.Vector
	for _, v := range loop {
		c = c.Add(verts[v])
	}
	return c.Mul(1 / float64(len(loop)))
}

// orient reverses every face whose Newell normal points toward the origin.
// Solids are centered on the origin, so the centroid direction is outward.
func (s *solid) orient() {
	for _, f := range s.faces {
		c := centroid(s.verts, f)
		var normal r3.Vector
		for k := range f {
			p, q := s.verts[f[k]].Sub(c), s.verts[f[(k+1)%len(f)]].Sub(c)
			normal = normal.Add(p.Cross(q))
		}
		if normal.Dot(c) < 0 {
			for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
				f[i], f[j] = f[j], f[i]
			}
		}
	}
}

// Platonic builds the named regular solid centered on the origin (or the
// WithCenter point), scaled by WithScale.
//
// Errors: ErrOptionViolation for an unknown name; ErrConstructFailed if the
// mesh or its sample attributes are rejected.
func Platonic(name PlatonicName, opts ...BuilderOption) (*mesh.Mesh, error) {
	cfg := newBuilderConfig(opts...)
	var s solid
	switch name {
	case Tetrahedron:
		s = tetrahedron()
	case Cube:
		s = cube()
	case Octahedron:
		s = octahedron()
	case Dodecahedron:
		s = dodecahedron()
	case Icosahedron:
		s = icosahedron()
	default:
		return nil, builderErrorf(MethodPlatonic, ErrOptionViolation, "unknown solid %d", int(name))
	}
	s.orient()

	return buildMesh(MethodPlatonic, cfg, s)
}

// buildMesh places s, derives edges from its faces and attaches the sample
// attributes when configured.
func buildMesh(method string, cfg builderConfig, s solid) (*mesh.Mesh, error) {
	pos := make([]r3.Vector, len(s.verts))
	for i, p := range s.verts {
		pos[i] = cfg.place(p)
	}
	m, err := mesh.FromFaces(pos, s.faces)
	if err != nil {
		return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
	}
	if cfg.attributes {
		if err = attachMeshAttributes(m); err != nil {
			return nil, builderErrorf(method, ErrConstructFailed, "%v", err)
		}
	}
	return m, nil
}

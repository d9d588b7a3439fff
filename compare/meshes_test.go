package compare_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/geocmp/attribute"
	"github.com/katalvlaran/geocmp/builder"
	"github.com/katalvlaran/geocmp/compare"
	"github.com/katalvlaran/geocmp/mesh"
)

// MeshSuite compares solids against renumbered and defective copies.
type MeshSuite struct {
	suite.Suite
	cube  *mesh.Mesh // bare cube
	rich  *mesh.Mesh // cube with an attribute on every domain
	ico   *mesh.Mesh // icosahedron with attributes
	tetra *mesh.Mesh
}

func (s *MeshSuite) SetupTest() {
	var err error
	s.cube, err = builder.Platonic(builder.Cube)
	s.Require().NoError(err)
	s.rich, err = builder.Platonic(builder.Cube, builder.WithAttributes())
	s.Require().NoError(err)
	s.ico, err = builder.Platonic(builder.Icosahedron, builder.WithAttributes())
	s.Require().NoError(err)
	s.tetra, err = builder.Platonic(builder.Tetrahedron)
	s.Require().NoError(err)
}

func TestMeshSuite(t *testing.T) {
	suite.Run(t, new(MeshSuite))
}

// compare runs Meshes and fails the test on error.
func (s *MeshSuite) compare(a, b *mesh.Mesh, threshold float64, opts ...compare.Option) compare.Mismatch {
	m, err := compare.Meshes(a, b, threshold, opts...)
	s.Require().NoError(err)
	return m
}

// replaced rebuilds m with attr substituted for the attribute of the same
// domain and name.
func (s *MeshSuite) replaced(m *mesh.Mesh, attr *attribute.Attribute) *mesh.Mesh {
	out, err := mesh.New(m.Positions(), m.Edges(), m.Faces())
	s.Require().NoError(err)
	for _, d := range attribute.Domains {
		for _, a := range m.Attributes().On(d) {
			if a.Domain == attr.Domain && a.Name == attr.Name {
				a = attr
			}
			s.Require().NoError(out.SetAttribute(a))
		}
	}
	return out
}

func (s *MeshSuite) TestReflexive() {
	for _, m := range []*mesh.Mesh{s.cube, s.rich, s.ico, s.tetra} {
		s.Equal(compare.None, s.compare(m, m, 0))
	}
}

func (s *MeshSuite) TestReversedIndices() {
	perm := []int{7, 6, 5, 4, 3, 2, 1, 0}
	b, err := builder.RenumberMesh(s.cube, perm)
	s.Require().NoError(err)
	s.Equal(compare.None, s.compare(s.cube, b, 1e-6))

	rb, err := builder.RenumberMesh(s.rich, perm)
	s.Require().NoError(err)
	s.Equal(compare.None, s.compare(s.rich, rb, 1e-6))
}

func (s *MeshSuite) TestShuffledIcosahedron() {
	for seed := int64(1); seed <= 4; seed++ {
		b, err := builder.ShuffleMesh(s.ico, builder.WithSeed(seed))
		s.Require().NoError(err)
		s.Equal(compare.None, s.compare(s.ico, b, 1e-9), "seed %d", seed)
		s.Equal(compare.None, s.compare(b, s.ico, 1e-9), "seed %d reversed", seed)
	}
}

func (s *MeshSuite) TestMovedVertex() {
	b, err := builder.Displace(s.cube, 0, r3.Vector{Z: 0.1})
	s.Require().NoError(err)
	s.Equal(compare.Positions, s.compare(s.cube, b, 0.01))
	s.Equal(compare.None, s.compare(s.cube, b, 0.2))
}

// TestInclusiveThreshold moves a vertex by exactly representable amounts so
// that the distance equals the threshold.
func (s *MeshSuite) TestInclusiveThreshold() {
	b, err := builder.Displace(s.cube, 7, r3.Vector{Z: 0.5})
	s.Require().NoError(err)

	for _, tc := range []struct {
		threshold float64
		want      compare.Mismatch
	}{
		{0, compare.Positions},
		{0.25, compare.Positions},
		{0.4999, compare.Positions},
		{0.5, compare.None},
		{1, compare.None},
		{10, compare.None},
	} {
		s.Equal(tc.want, s.compare(s.cube, b, tc.threshold), "threshold %v", tc.threshold)
	}
}

func (s *MeshSuite) TestCounts() {
	removed, err := builder.DropFace(s.cube, 0)
	s.Require().NoError(err)
	s.Equal(compare.NumFaces, s.compare(s.cube, removed, 1e-6))

	oct, err := builder.Platonic(builder.Octahedron)
	s.Require().NoError(err)
	s.Equal(compare.NumVerts, s.compare(s.cube, oct, 1e-6))

	extra, err := mesh.New(s.cube.Positions(), append(s.cube.Edges(), [2]int{0, 7}), s.cube.Faces())
	s.Require().NoError(err)
	s.Equal(compare.NumEdges, s.compare(s.cube, extra, 1e-6))

	square := []r3.Vector{{X: 0}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}
	tri, err := mesh.New(square, nil, [][]int{{0, 1, 2}})
	s.Require().NoError(err)
	quad, err := mesh.New(square, nil, [][]int{{0, 1, 2, 3}})
	s.Require().NoError(err)
	s.Equal(compare.NumCorners, s.compare(tri, quad, 1e-6))
}

// TestCountsFirst verifies that counts short-circuit before any value work:
// a huge threshold would otherwise make every position equal.
func (s *MeshSuite) TestCountsFirst() {
	a, err := builder.Grid(2, 2)
	s.Require().NoError(err)
	b, err := builder.Grid(2, 3)
	s.Require().NoError(err)
	s.Equal(compare.NumVerts, s.compare(a, b, 1e9))
}

func (s *MeshSuite) TestSchema() {
	s.Equal(compare.AttributeSchema, s.compare(s.cube, s.rich, 1e-6))
	s.Equal(compare.AttributeSchema, s.compare(s.rich, s.cube, 1e-6))
}

func (s *MeshSuite) TestVertexAttribute() {
	h, _ := s.rich.Attributes().Lookup(attribute.Point, builder.AttrHeight)
	values := slices.Clone(h.Flat())
	values[0] = 5
	changed, err := attribute.NewFloat(builder.AttrHeight, attribute.Point, values)
	s.Require().NoError(err)
	s.Equal(compare.VertexAttributes, s.compare(s.rich, s.replaced(s.rich, changed), 1e-6))
}

func (s *MeshSuite) TestEdgeAttribute() {
	l, _ := s.rich.Attributes().Lookup(attribute.Edge, builder.AttrLength)
	values := slices.Clone(l.Flat())
	values[3] += 1
	changed, err := attribute.NewFloat(builder.AttrLength, attribute.Edge, values)
	s.Require().NoError(err)
	s.Equal(compare.EdgeAttributes, s.compare(s.rich, s.replaced(s.rich, changed), 1e-6))
}

// TestFaceAttributeSwap exchanges the materials of two faces: the value
// multisets stay equal, so only the face signatures see the difference.
func (s *MeshSuite) TestFaceAttributeSwap() {
	changed, err := attribute.NewInt(builder.AttrMaterial, attribute.Face, []int{1, 0, 2, 0, 1, 2})
	s.Require().NoError(err)
	s.Equal(compare.FaceAttributes, s.compare(s.rich, s.replaced(s.rich, changed), 1e-6))
}

// TestCornerAttributeSwap exchanges the UVs of two corners of one face.
func (s *MeshSuite) TestCornerAttributeSwap() {
	uv, _ := s.rich.Attributes().Lookup(attribute.Corner, builder.AttrUV)
	values := slices.Clone(uv.Flat())
	values[0], values[2] = values[2], values[0]
	changed, err := attribute.New(builder.AttrUV, attribute.Corner, attribute.Float2, values)
	s.Require().NoError(err)
	s.Equal(compare.CornerAttributes, s.compare(s.rich, s.replaced(s.rich, changed), 1e-6))
}

func (s *MeshSuite) TestFlippedFaces() {
	for _, m := range []*mesh.Mesh{s.tetra, s.cube, s.rich} {
		flipped, err := builder.FlipFaces(m)
		s.Require().NoError(err)
		s.Equal(compare.FaceTopology, s.compare(m, flipped, 1e-6))
		s.Equal(compare.None, s.compare(m, flipped, 1e-6, compare.WithFlippedFaces(true)))
	}
}

// TestSymmetricCube collapses every position into one class, so the
// bijection has to be found by individualization.
func (s *MeshSuite) TestSymmetricCube() {
	b, err := builder.ShuffleMesh(s.cube, builder.WithSeed(5))
	s.Require().NoError(err)
	s.Equal(compare.None, s.compare(s.cube, b, 10))
	s.Equal(compare.VertexCorrespondence, s.compare(s.cube, b, 10, compare.WithMaxBacktrack(0)))

	flipped, err := builder.FlipFaces(b)
	s.Require().NoError(err)
	s.Equal(compare.None, s.compare(s.cube, flipped, 10, compare.WithFlippedFaces(true)))
}

func (s *MeshSuite) TestRelativeTolerance() {
	big, err := builder.Platonic(builder.Cube, builder.WithScale(1000))
	s.Require().NoError(err)
	moved, err := builder.Displace(big, 7, r3.Vector{Z: 1})
	s.Require().NoError(err)
	s.Equal(compare.Positions, s.compare(big, moved, 0.01))
	s.Equal(compare.None, s.compare(big, moved, 0.01, compare.WithRelativeTolerance()))
}

// TestSymmetry checks that both argument orders agree on whether a
// mismatch exists.
func (s *MeshSuite) TestSymmetry() {
	moved, err := builder.Displace(s.rich, 2, r3.Vector{X: 0.3})
	s.Require().NoError(err)
	flipped, err := builder.FlipFaces(s.cube)
	s.Require().NoError(err)
	removed, err := builder.DropFace(s.cube, 3)
	s.Require().NoError(err)
	shuffled, err := builder.ShuffleMesh(s.ico, builder.WithSeed(9))
	s.Require().NoError(err)

	for _, pair := range [][2]*mesh.Mesh{
		{s.rich, moved}, {s.cube, flipped}, {s.cube, removed}, {s.ico, shuffled}, {s.cube, s.rich},
	} {
		ab := s.compare(pair[0], pair[1], 0.1)
		ba := s.compare(pair[1], pair[0], 0.1)
		s.Equal(ab.Found(), ba.Found(), "%v vs %v", ab, ba)
	}
}

// TestWorkers verifies that the result does not depend on parallelism.
func (s *MeshSuite) TestWorkers() {
	grid, err := builder.Grid(24, 24, builder.WithAttributes())
	s.Require().NoError(err)
	shuffled, err := builder.ShuffleMesh(grid, builder.WithSeed(2))
	s.Require().NoError(err)
	moved, err := builder.Displace(shuffled, 100, r3.Vector{Z: 1})
	s.Require().NoError(err)

	for _, w := range []int{1, 2, 8} {
		s.Equal(compare.None, s.compare(grid, shuffled, 1e-9, compare.WithWorkers(w)))
		s.Equal(compare.Positions, s.compare(grid, moved, 1e-9, compare.WithWorkers(w)))
	}
}

func (s *MeshSuite) TestNaN() {
	pos := s.cube.Positions()
	pos[0].X = math.NaN()
	m, err := mesh.New(pos, s.cube.Edges(), s.cube.Faces())
	s.Require().NoError(err)
	s.Equal(compare.Positions, s.compare(m, m, 1))
}

func (s *MeshSuite) TestLogger() {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	moved, err := builder.Displace(s.cube, 0, r3.Vector{Z: 0.1})
	s.Require().NoError(err)

	s.Equal(compare.Positions, s.compare(s.cube, moved, 0.01, compare.WithLogger(log)))
	out := buf.String()
	s.Contains(out, `"msg":"mismatch"`)
	s.Contains(out, `"kind":"positions"`)
	s.Contains(out, `"domain":"mesh"`)
	s.Contains(out, `"attribute":"position"`)
}

func TestMeshes_Errors(t *testing.T) {
	t.Parallel()

	cube, err := builder.Platonic(builder.Cube)
	require.NoError(t, err)

	_, err = compare.Meshes(nil, cube, 0)
	require.ErrorIs(t, err, compare.ErrNilGeometry)
	_, err = compare.Meshes(cube, nil, 0)
	require.ErrorIs(t, err, compare.ErrNilGeometry)

	_, err = compare.Meshes(cube, cube, -1)
	require.ErrorIs(t, err, compare.ErrBadThreshold)
	_, err = compare.Meshes(cube, cube, math.NaN())
	require.ErrorIs(t, err, compare.ErrBadThreshold)

	for _, opt := range []compare.Option{
		compare.WithWorkers(-1),
		compare.WithMaxRounds(-1),
		compare.WithMaxBacktrack(-3),
	} {
		_, err = compare.Meshes(cube, cube, 0, opt)
		require.ErrorIs(t, err, compare.ErrOptionViolation)
	}
	_, err = compare.Meshes(cube, cube, 1, compare.WithRelativeTolerance())
	require.ErrorIs(t, err, compare.ErrOptionViolation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = compare.Meshes(cube, cube, 1e-6, compare.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

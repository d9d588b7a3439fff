package attribute_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geocmp/attribute"
)

func TestNew_Validation(t *testing.T) {
	_, err := attribute.New("", attribute.Point, attribute.Float, nil)
	assert.ErrorIs(t, err, attribute.ErrEmptyName)

	_, err = attribute.New("uv", attribute.Corner, attribute.Float2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, attribute.ErrBadLength)

	_, err = attribute.New("x", attribute.Point, attribute.Type(200), nil)
	assert.ErrorIs(t, err, attribute.ErrUnknownType)
}

func TestAttribute_Accessors(t *testing.T) {
	a, err := attribute.NewFloat3("offset", attribute.Point, []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []float64{4, 5, 6}, a.Value(1))
	assert.Len(t, a.Flat(), 6)

	b, err := attribute.NewBool("sharp", attribute.Edge, []bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, b.Value(0))
	assert.True(t, b.Type.Exact())
	assert.False(t, a.Type.Exact())

	c, err := attribute.NewColor("col", attribute.Corner, [][4]float64{{1, 0, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Type.Width())
	assert.Equal(t, "color_float", c.Type.String())
}

// TestNew_CopiesInput ensures callers cannot mutate stored values afterwards.
func TestNew_CopiesInput(t *testing.T) {
	src := []float64{1, 2}
	a, err := attribute.NewFloat("w", attribute.Point, src)
	require.NoError(t, err)
	src[0] = 99
	assert.Equal(t, 1.0, a.Value(0)[0])
}

func TestSet_AddLookupOn(t *testing.T) {
	s := attribute.NewSet()
	z, _ := attribute.NewFloat("z", attribute.Point, []float64{1})
	a, _ := attribute.NewInt("a", attribute.Point, []int{7})
	f, _ := attribute.NewInt8("mat", attribute.Face, []int8{2})

	require.NoError(t, s.Add(z))
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(f))
	assert.ErrorIs(t, s.Add(z), attribute.ErrDuplicate)

	names := []string{}
	for _, attr := range s.On(attribute.Point) {
		names = append(names, attr.Name)
	}
	assert.Equal(t, []string{"a", "z"}, names, "On must be name-sorted")

	got, ok := s.Lookup(attribute.Face, "mat")
	require.True(t, ok)
	assert.Equal(t, attribute.Int8, got.Type)
	_, ok = s.Lookup(attribute.Edge, "mat")
	assert.False(t, ok)
	assert.Equal(t, 3, s.Len())

	assert.NoError(t, s.Validate(attribute.Point, 1))
	assert.ErrorIs(t, s.Validate(attribute.Point, 2), attribute.ErrDomainSize)
}

func TestSameSchema(t *testing.T) {
	mk := func(typ attribute.Type) *attribute.Set {
		s := attribute.NewSet()
		a, err := attribute.New("w", attribute.Point, typ, []float64{0})
		require.NoError(t, err)
		require.NoError(t, s.Add(a))
		return s
	}
	_, ok := attribute.SameSchema(mk(attribute.Float), mk(attribute.Float), attribute.Domains...)
	assert.True(t, ok)

	d, ok := attribute.SameSchema(mk(attribute.Float), mk(attribute.Int32), attribute.Domains...)
	assert.False(t, ok)
	assert.Equal(t, attribute.Point, d)

	d, ok = attribute.SameSchema(mk(attribute.Float), attribute.NewSet(), attribute.Domains...)
	assert.False(t, ok)
	assert.Equal(t, attribute.Point, d)

	var nilSet *attribute.Set
	_, ok = attribute.SameSchema(nilSet, attribute.NewSet(), attribute.Domains...)
	assert.True(t, ok, "nil set behaves as empty")
}

func TestSet_CloneReplace(t *testing.T) {
	s := attribute.NewSet()
	w, _ := attribute.NewFloat("w", attribute.Point, []float64{1})
	require.NoError(t, s.Add(w))

	cp := s.Clone()
	w2, _ := attribute.NewFloat("w", attribute.Point, []float64{2})
	cp.Replace(w2)

	orig, _ := s.Lookup(attribute.Point, "w")
	repl, _ := cp.Lookup(attribute.Point, "w")
	assert.Equal(t, 1.0, orig.Value(0)[0])
	assert.Equal(t, 2.0, repl.Value(0)[0])
}

// Package attribute defines the generic, named, typed per-element data that
// geometry containers carry on each domain, and the Set that holds them.
//
// Errors:
//
//	ErrEmptyName  - attribute name is the empty string.
//	ErrBadLength  - value slice length is not a multiple of the type width.
//	ErrDuplicate  - an attribute with the same name already exists on the domain.
//	ErrUnknownType - the Type is not one of the declared constants.
//	ErrDomainSize - attribute element count differs from the domain size.
package attribute

import "errors"

// Sentinel errors for attribute construction and set mutation.
var (
	// ErrEmptyName indicates an attribute was created without a name.
	ErrEmptyName = errors.New("attribute: name is empty")

	// ErrBadLength indicates the flat value slice does not fit the type width.
	ErrBadLength = errors.New("attribute: value count is not a multiple of the type width")

	// ErrDuplicate indicates a second attribute with the same name on the same domain.
	ErrDuplicate = errors.New("attribute: duplicate attribute on domain")

	// ErrUnknownType indicates an undeclared Type value.
	ErrUnknownType = errors.New("attribute: unknown type")

	// ErrDomainSize indicates the attribute element count does not match its domain.
	ErrDomainSize = errors.New("attribute: element count does not match domain size")
)

// Domain is the element granularity an attribute is stored on.
type Domain uint8

const (
	// Point covers mesh vertices, curve control points and lattice points.
	Point Domain = iota
	// Edge covers mesh edges.
	Edge
	// Face covers mesh faces.
	Face
	// Corner covers mesh face corners.
	Corner
	// Curve covers whole curves of a curve network.
	Curve
)

// Domains lists every Domain in declaration order.
var Domains = []Domain{Point, Edge, Face, Corner, Curve}

// String returns the lowercase domain name.
func (d Domain) String() string {
	switch d {
	case Point:
		return "point"
	case Edge:
		return "edge"
	case Face:
		return "face"
	case Corner:
		return "corner"
	case Curve:
		return "curve"
	default:
		return "unknown"
	}
}

// Type is the value type of an attribute.
type Type uint8

const (
	// Bool stores 0 or 1.
	Bool Type = iota
	// Int8 stores small signed integers (curve types, handle types).
	Int8
	// Int32 stores signed integers.
	Int32
	// Int2 stores integer pairs.
	Int2
	// Float stores one float.
	Float
	// Float2 stores 2D vectors (UV maps).
	Float2
	// Float3 stores 3D vectors.
	Float3
	// ColorFloat stores linear RGBA.
	ColorFloat
	// ColorByte stores 8-bit RGBA; compared exactly.
	ColorByte
	// Quaternion stores rotations as (w, x, y, z).
	Quaternion
)

// typeInfo is the per-type width and exactness table.
var typeInfo = map[Type]struct {
	name  string
	width int
	exact bool
}{
	Bool:       {"bool", 1, true},
	Int8:       {"int8", 1, true},
	Int32:      {"int32", 1, true},
	Int2:       {"int2", 2, true},
	Float:      {"float", 1, false},
	Float2:     {"float2", 2, false},
	Float3:     {"float3", 3, false},
	ColorFloat: {"color_float", 4, false},
	ColorByte:  {"color_byte", 4, true},
	Quaternion: {"quaternion", 4, false},
}

// Valid reports whether t is a declared type.
func (t Type) Valid() bool {
	_, ok := typeInfo[t]
	return ok
}

// Width is the number of float64 components one element occupies.
func (t Type) Width() int {
	return typeInfo[t].width
}

// Exact reports whether values of this type are compared without tolerance.
func (t Type) Exact() bool {
	return typeInfo[t].exact
}

// String returns the type name.
func (t Type) String() string {
	if info, ok := typeInfo[t]; ok {
		return info.name
	}
	return "unknown"
}

// Well-known attribute names used by curve networks. Containers store these
// like any other attribute; the comparator only treats the handle pairs
// specially (their roles swap when a curve is traversed backwards).
const (
	Radius          = "radius"
	Tilt            = "tilt"
	HandleLeft      = "handle_left"
	HandleRight     = "handle_right"
	HandleTypeLeft  = "handle_type_left"
	HandleTypeRight = "handle_type_right"
	NurbsWeight     = "nurbs_weight"
	Cyclic          = "cyclic"
	CurveType       = "curve_type"
	NurbsOrder      = "nurbs_order"
	KnotsMode       = "knots_mode"
	Resolution      = "resolution"
)

// Pair names two point attributes whose meaning swaps when a curve is reversed.
type Pair struct {
	Left, Right string
}

// DirectionalPairs lists the handle attribute pairs.
var DirectionalPairs = []Pair{
	{Left: HandleLeft, Right: HandleRight},
	{Left: HandleTypeLeft, Right: HandleTypeRight},
}

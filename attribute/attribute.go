package attribute

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r3"
)

// Attribute is one named column of per-element values on a domain.
//
// Values are stored flat as float64, Type.Width() components per element.
// Integer-like types hold exact integers (safe up to 2^53).
type Attribute struct {
	// Name identifies the attribute within its domain.
	Name string

	// Domain is the element granularity.
	Domain Domain

	// Type determines width and whether tolerance applies.
	Type Type

	values []float64
}

// New creates an attribute from flat values. The slice is copied.
func New(name string, domain Domain, typ Type, values []float64) (*Attribute, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}
	if len(values)%typ.Width() != 0 {
		return nil, fmt.Errorf("%w: %q has %d values for width %d", ErrBadLength, name, len(values), typ.Width())
	}
	cp := make([]float64, len(values))
	copy(cp, values)

	return &Attribute{Name: name, Domain: domain, Type: typ, values: cp}, nil
}

// NewFloat creates a Float attribute.
func NewFloat(name string, domain Domain, values []float64) (*Attribute, error) {
	return New(name, domain, Float, values)
}

// NewInt creates an Int32 attribute.
func NewInt(name string, domain Domain, values []int) (*Attribute, error) {
	flat := make([]float64, len(values))
	for i, v := range values {
		flat[i] = float64(v)
	}
	return New(name, domain, Int32, flat)
}

// NewInt8 creates an Int8 attribute (enum-like values).
func NewInt8(name string, domain Domain, values []int8) (*Attribute, error) {
	flat := make([]float64, len(values))
	for i, v := range values {
		flat[i] = float64(v)
	}
	return New(name, domain, Int8, flat)
}

// NewBool creates a Bool attribute.
func NewBool(name string, domain Domain, values []bool) (*Attribute, error) {
	flat := make([]float64, len(values))
	for i, v := range values {
		if v {
			flat[i] = 1
		}
	}
	return New(name, domain, Bool, flat)
}

// NewFloat3 creates a Float3 attribute from vectors.
func NewFloat3(name string, domain Domain, values []r3.Vector) (*Attribute, error) {
	flat := make([]float64, 0, 3*len(values))
	for _, v := range values {
		flat = append(flat, v.X, v.Y, v.Z)
	}
	return New(name, domain, Float3, flat)
}

// NewColor creates a ColorFloat attribute.
func NewColor(name string, domain Domain, values [][4]float64) (*Attribute, error) {
	flat := make([]float64, 0, 4*len(values))
	for _, c := range values {
		flat = append(flat, c[:]...)
	}
	return New(name, domain, ColorFloat, flat)
}

// Len is the number of elements.
func (a *Attribute) Len() int {
	return len(a.values) / a.Type.Width()
}

// Value returns the components of element i. The slice aliases internal
// storage and must not be modified.
func (a *Attribute) Value(i int) []float64 {
	w := a.Type.Width()
	return a.values[i*w : (i+1)*w : (i+1)*w]
}

// Flat returns all components. The slice aliases internal storage.
func (a *Attribute) Flat() []float64 {
	return a.values
}

// Set is a per-geometry collection of attributes keyed by (domain, name).
// A Set is not safe for concurrent mutation; concurrent reads are fine.
type Set struct {
	byDomain map[Domain]map[string]*Attribute
}

// NewSet returns an empty attribute set.
func NewSet() *Set {
	return &Set{byDomain: make(map[Domain]map[string]*Attribute)}
}

// Add inserts attr. Names are unique per domain.
func (s *Set) Add(attr *Attribute) error {
	if attr == nil || attr.Name == "" {
		return ErrEmptyName
	}
	m, ok := s.byDomain[attr.Domain]
	if !ok {
		m = make(map[string]*Attribute)
		s.byDomain[attr.Domain] = m
	}
	if _, dup := m[attr.Name]; dup {
		return fmt.Errorf("%w: %s/%s", ErrDuplicate, attr.Domain, attr.Name)
	}
	m[attr.Name] = attr

	return nil
}

// Lookup finds an attribute by domain and name.
func (s *Set) Lookup(domain Domain, name string) (*Attribute, bool) {
	if s == nil {
		return nil, false
	}
	a, ok := s.byDomain[domain][name]
	return a, ok
}

// On returns the attributes of a domain sorted by name.
func (s *Set) On(domain Domain) []*Attribute {
	if s == nil {
		return nil
	}
	m := s.byDomain[domain]
	out := make([]*Attribute, 0, len(m))
	for _, a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Len is the total number of attributes over all domains.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, m := range s.byDomain {
		n += len(m)
	}
	return n
}

// Validate checks every attribute of a domain against its element count.
func (s *Set) Validate(domain Domain, size int) error {
	for _, a := range s.On(domain) {
		if a.Len() != size {
			return fmt.Errorf("%w: %s/%s has %d elements, want %d", ErrDomainSize, domain, a.Name, a.Len(), size)
		}
	}
	return nil
}

// Clone returns a copy of the set sharing the immutable attributes.
func (s *Set) Clone() *Set {
	out := NewSet()
	if s == nil {
		return out
	}
	for d, m := range s.byDomain {
		cp := make(map[string]*Attribute, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out.byDomain[d] = cp
	}
	return out
}

// Replace inserts attr, overwriting any attribute with the same key.
func (s *Set) Replace(attr *Attribute) {
	m, ok := s.byDomain[attr.Domain]
	if !ok {
		m = make(map[string]*Attribute)
		s.byDomain[attr.Domain] = m
	}
	m[attr.Name] = attr
}

// SameSchema reports whether two sets declare the same (domain, name, type)
// triples on the given domains. The first differing domain is returned.
func SameSchema(a, b *Set, domains ...Domain) (Domain, bool) {
	for _, d := range domains {
		la, lb := a.On(d), b.On(d)
		if len(la) != len(lb) {
			return d, false
		}
		for i := range la {
			if la[i].Name != lb[i].Name || la[i].Type != lb[i].Type {
				return d, false
			}
		}
	}
	return 0, true
}

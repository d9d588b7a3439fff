package fingerprint

import (
	"cmp"
	"math"
	"slices"

	"github.com/katalvlaran/geocmp/tolerance"
)

// Channel is one value column over the elements of two inputs: Width floats
// per element, A's elements in A and B's in B. Exact channels ignore the
// tolerance (integer, boolean and byte-color data).
type Channel struct {
	Name  string
	Width int
	Exact bool
	A, B  []float64
}

// Len returns the element counts of both sides.
func (c Channel) Len() (na, nb int) {
	if c.Width == 0 {
		return 0, 0
	}
	return len(c.A) / c.Width, len(c.B) / c.Width
}

// value returns the components of joined element i (A first, then B).
func (c Channel) value(i, na int) []float64 {
	w := c.Width
	if i < na {
		return c.A[i*w : (i+1)*w]
	}
	i -= na
	return c.B[i*w : (i+1)*w]
}

// Classify assigns a class id to every element of A and B such that two
// elements whose values are componentwise equal within tol share a class.
// Ids are dense and assigned in first-seen order over A, then B.
func Classify(ch Channel, tol tolerance.Tolerance) (ca, cb []uint32) {
	if ch.Exact {
		tol = tolerance.Exact
	}
	na, nb := ch.Len()
	n := na + nb
	if n == 0 {
		return []uint32{}, []uint32{}
	}

	// 1. Chain-scan each component independently: sorted neighbors within
	//    reach share a component class. This is the exact single-linkage
	//    clustering in one dimension.
	compCols := make([][]uint32, ch.Width)
	order := make([]int, n)
	for k := 0; k < ch.Width; k++ {
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(x, y int) int {
			return cmp.Compare(ch.value(x, na)[k], ch.value(y, na)[k])
		})
		col := make([]uint32, n)
		var class uint32
		for p := 1; p < n; p++ {
			if !tol.Equal(ch.value(order[p-1], na)[k], ch.value(order[p], na)[k]) {
				class++
			}
			col[order[p]] = class
		}
		compCols[k] = col
	}

	// 2. Group elements by their tuple of component classes. Only members of
	//    the same group can be equal on every component.
	pal := NewPalette()
	group := make([]uint32, n)
	key := make([]uint32, ch.Width)
	for i := 0; i < n; i++ {
		for k := range compCols {
			key[k] = compCols[k][i]
		}
		group[i] = pal.Intern(key...)
	}

	// 3. Inside multi-member groups of vector channels, union exactly the
	//    pairs that are equal on all components. Members are sorted along
	//    their widest component, and a scan stops at the first member out
	//    of reach on that component.
	dsu := NewDisjointSet(n)
	if ch.Width > 1 {
		members := make([][]int, pal.Len())
		for i, g := range group {
			members[g] = append(members[g], i)
		}
		sorted := tol.Mode == tolerance.Absolute || tol.Threshold < 1
		for _, m := range members {
			if len(m) < 2 {
				continue
			}
			axis := widest(ch, m, na)
			if sorted {
				slices.SortStableFunc(m, func(x, y int) int {
					return cmp.Compare(ch.value(x, na)[axis], ch.value(y, na)[axis])
				})
			}
			for x := 0; x < len(m); x++ {
				vx := ch.value(m[x], na)
				for y := x + 1; y < len(m); y++ {
					vy := ch.value(m[y], na)
					if !tol.Equal(vx[axis], vy[axis]) {
						if sorted {
							break
						}
						continue
					}
					if tol.EqualSlice(vx, vy) {
						dsu.Union(m[x], m[y])
					}
				}
			}
		}
	} else {
		first := make(map[uint32]int, pal.Len())
		for i, g := range group {
			if f, ok := first[g]; ok {
				dsu.Union(f, i)
			} else {
				first[g] = i
			}
		}
	}

	// 4. Dense ids from roots in element order.
	ids := make(map[int]uint32)
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		r := dsu.Find(i)
		id, ok := ids[r]
		if !ok {
			id = uint32(len(ids))
			ids[r] = id
		}
		out[i] = id
	}
	return out[:na:na], out[na:]
}

// widest returns the component with the largest value range over members.
func widest(ch Channel, members []int, na int) int {
	best, bestSpan := 0, -1.0
	for k := 0; k < ch.Width; k++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, i := range members {
			v := ch.value(i, na)[k]
			lo, hi = min(lo, v), max(hi, v)
		}
		if span := hi - lo; span > bestSpan {
			best, bestSpan = k, span
		}
	}
	return best
}

// ClassifyPaired classifies two channels whose roles swap when an element
// sequence is reversed (left/right handles). Values of both channels are
// pooled into one clustering, and each element's class is the unordered
// pair of its left and right classes.
func ClassifyPaired(left, right Channel, tol tolerance.Tolerance) (ca, cb []uint32) {
	na, nb := left.Len()
	pooled := Channel{
		Name:  left.Name + "+" + right.Name,
		Width: left.Width,
		Exact: left.Exact || right.Exact,
		A:     append(append([]float64(nil), left.A...), right.A...),
		B:     append(append([]float64(nil), left.B...), right.B...),
	}
	pa, pb := Classify(pooled, tol)

	pal := NewPalette()
	pair := func(l, r uint32) uint32 {
		return pal.Intern(min(l, r), max(l, r))
	}
	ca = make([]uint32, na)
	for i := range ca {
		ca[i] = pair(pa[i], pa[na+i])
	}
	cb = make([]uint32, nb)
	for i := range cb {
		cb[i] = pair(pb[i], pb[nb+i])
	}
	return ca, cb
}

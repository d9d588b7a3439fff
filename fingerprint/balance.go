package fingerprint

// Group holds the members of one color class in each input.
type Group struct {
	A, B []int
}

// Balanced reports whether every color occurs equally often in ca and cb.
// On failure it returns the smallest offending color, so the reported class
// does not depend on map iteration order.
// Complexity: O(n + C) for C colors.
func Balanced(ca, cb []uint32) (ok bool, color uint32) {
	if len(ca) != len(cb) {
		// Callers compare counts first; treat it as an imbalance on color 0.
		return false, 0
	}
	var top uint32
	for _, c := range ca {
		top = max(top, c)
	}
	for _, c := range cb {
		top = max(top, c)
	}
	diff := make([]int, int(top)+1)
	for _, c := range ca {
		diff[c]++
	}
	for _, c := range cb {
		diff[c]--
	}
	for c, d := range diff {
		if d != 0 {
			return false, uint32(c)
		}
	}
	return true, 0
}

// Groups indexes both inputs by color.
func Groups(ca, cb []uint32) map[uint32]*Group {
	out := make(map[uint32]*Group)
	get := func(c uint32) *Group {
		g, ok := out[c]
		if !ok {
			g = &Group{}
			out[c] = g
		}
		return g
	}
	for i, c := range ca {
		g := get(c)
		g.A = append(g.A, i)
	}
	for i, c := range cb {
		g := get(c)
		g.B = append(g.B, i)
	}
	return out
}

// FirstOf returns the lowest A index carrying color c, or the lowest B index
// if only B has it, with fromA telling which side it came from. It returns
// -1 when neither side has the color.
func FirstOf(ca, cb []uint32, c uint32) (index int, fromA bool) {
	for i, x := range ca {
		if x == c {
			return i, true
		}
	}
	for i, x := range cb {
		if x == c {
			return i, false
		}
	}
	return -1, false
}

// Distinct counts the distinct colors over both inputs.
func Distinct(ca, cb []uint32) int {
	seen := make(map[uint32]struct{}, len(ca))
	for _, c := range ca {
		seen[c] = struct{}{}
	}
	for _, c := range cb {
		seen[c] = struct{}{}
	}
	return len(seen)
}

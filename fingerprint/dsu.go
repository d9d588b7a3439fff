package fingerprint

// DisjointSet is an index-based union-find with path compression and union
// by rank.
type DisjointSet struct {
	parent []int
	rank   []uint8
}

// NewDisjointSet creates n singleton sets {0}, {1}, ..., {n-1}.
func NewDisjointSet(n int) *DisjointSet {
	d := &DisjointSet{parent: make([]int, n), rank: make([]uint8, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// Find returns the root of x's set.
// Iterative with path halving, so deep chains never recurse.
func (d *DisjointSet) Find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// Union merges the sets of x and y and reports whether they were disjoint.
func (d *DisjointSet) Union(x, y int) bool {
	rx, ry := d.Find(x), d.Find(y)
	if rx == ry {
		return false
	}
	// Attach the shallower tree under the deeper root.
	if d.rank[rx] < d.rank[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	if d.rank[rx] == d.rank[ry] {
		d.rank[rx]++
	}
	return true
}

// Len is the number of elements.
func (d *DisjointSet) Len() int { return len(d.parent) }

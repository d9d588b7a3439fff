package fingerprint

// Adjacency is a labeled directed adjacency in compressed sparse row form.
// Arcs of element i are Targets[Offsets[i]:Offsets[i+1]] with matching
// Labels. Undirected relations are stored as two arcs.
type Adjacency struct {
	Offsets []int
	Targets []int
	Labels  []uint32
}

// Len is the number of elements.
func (a *Adjacency) Len() int {
	if a == nil || len(a.Offsets) == 0 {
		return 0
	}
	return len(a.Offsets) - 1
}

// Arcs returns the targets and labels of element i. Both slices alias
// internal storage.
func (a *Adjacency) Arcs(i int) (targets []int, labels []uint32) {
	lo, hi := a.Offsets[i], a.Offsets[i+1]
	return a.Targets[lo:hi], a.Labels[lo:hi]
}

// Degree is the number of arcs leaving element i.
func (a *Adjacency) Degree(i int) int {
	return a.Offsets[i+1] - a.Offsets[i]
}

// AdjacencyBuilder accumulates arcs before freezing them into an Adjacency.
type AdjacencyBuilder struct {
	n   int
	src []int
	dst []int
	lbl []uint32
}

// NewAdjacencyBuilder prepares a builder for n elements.
func NewAdjacencyBuilder(n int) *AdjacencyBuilder {
	return &AdjacencyBuilder{n: n}
}

// Arc adds a directed arc from → to with label.
func (b *AdjacencyBuilder) Arc(from, to int, label uint32) {
	b.src = append(b.src, from)
	b.dst = append(b.dst, to)
	b.lbl = append(b.lbl, label)
}

// Link adds the undirected relation from ↔ to with the same label both ways.
func (b *AdjacencyBuilder) Link(from, to int, label uint32) {
	b.Arc(from, to, label)
	b.Arc(to, from, label)
}

// Build freezes the arcs with a stable counting sort by source, so arcs of
// one element keep insertion order.
// Complexity: O(n + m).
func (b *AdjacencyBuilder) Build() *Adjacency {
	offsets := make([]int, b.n+1)
	for _, s := range b.src {
		offsets[s+1]++
	}
	for i := 0; i < b.n; i++ {
		offsets[i+1] += offsets[i]
	}
	next := append([]int(nil), offsets[:b.n]...)
	targets := make([]int, len(b.src))
	labels := make([]uint32, len(b.src))
	for k, s := range b.src {
		p := next[s]
		next[s]++
		targets[p] = b.dst[k]
		labels[p] = b.lbl[k]
	}
	return &Adjacency{Offsets: offsets, Targets: targets, Labels: labels}
}

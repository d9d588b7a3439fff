// Package fingerprint computes order-independent element colors for two
// geometries at once and checks that their color classes correspond.
//
// What:
//
//   - Classify clusters one value channel (an attribute column over the
//     elements of input A followed by input B) into classes: values equal
//     within the tolerance always share a class. Clustering is a per-component
//     sorted chain scan followed by a union-find pass inside each candidate
//     group, so classes are single-linkage components of the componentwise
//     "equal within tolerance" relation.
//   - Palette interns tuples of class ids into dense colors shared by both
//     inputs, so equal colors mean equal fingerprints across inputs.
//   - Balanced compares the two color histograms (the initial rejection of a
//     domain: any class with different sizes in A and B is a mismatch).
//   - Refine runs 1-dimensional Weisfeiler–Leman color refinement over a
//     labeled adjacency (CSR) until the class count stops growing.
//
// Determinism:
//
//   - Colors are assigned in first-seen order over A's elements, then B's.
//     The same inputs always produce the same colors regardless of the
//     number of workers.
//
// Concurrency:
//
//   - Each refinement round computes all element keys in parallel chunks
//     (errgroup, bounded by Workers) from the previous round's colors, then
//     interns them sequentially after the barrier. Rounds never read colors
//     they are writing.
//
// Complexity:
//
//   - Classify:  O(k·n log n) for n elements of width k, plus, per
//     candidate group of size g, O(g log g) sorting and one comparison per
//     pair within reach on the group's widest component. A group whose
//     members all lie within reach on every component still costs O(g²).
//   - Refine:    O(R·(n + m log d)) for R rounds, m arcs, max degree d.
package fingerprint

// Package bijection resolves a one-to-one correspondence between the
// elements of two inputs whose elements already carry refined colors and a
// labeled adjacency.
//
// What
//
//   - Resolve starts from candidate sets (one roaring bitmap of B elements per
//     A element, seeded from color classes) and shrinks them by propagation:
//     an A element adjacent to a resolved neighbor n through label l may only
//     map to a B element adjacent to the image of n through label l.
//   - Singletons are assigned; assigned targets are removed from all other
//     candidate sets.
//   - When propagation stalls with sets larger than one, a bounded
//     individualization step fixes one choice and propagates again,
//     backtracking on failure.
//   - Options.Accept prunes candidate pairs during propagation and
//     individualization; Options.Complete vets every complete mapping, and
//     a refusal backtracks like any other failure.
//
// Outcomes
//
//   - Resolved:     every element mapped, labeled adjacency preserved.
//   - Conflict:     some candidate set became empty, or two elements were
//     forced onto the same target: no correspondence exists.
//   - Ambiguous:    choices remain after the individualization budget.
//   - Inconsistent: a complete mapping that does not preserve adjacency.
//   - Rejected:     complete mappings were found but Complete refused all.
//
// Determinism
//
//	Rounds are double-buffered: every unresolved element's new set is
//	computed from the previous round's state (in parallel), then applied in
//	ascending element order. Individualization picks the unresolved element
//	with the smallest set (lowest index on ties) and tries its candidates in
//	ascending order. The result never depends on the worker count.
//
// Complexity
//
//   - One round: O(m · log k) bitmap work for m arcs and candidate sets of
//     size k.
//   - Rounds per propagation: at most n + 1.
//   - Individualization: at most n free first choices along any branch and
//     MaxBacktrack further choices overall, so at most (MaxBacktrack+1)·n
//     propagations.
package bijection

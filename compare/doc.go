// Package compare decides whether two meshes, two curve networks or two
// lattices are the same geometry up to element order and a numeric
// threshold, and names the first defect when they are not.
//
// What
//
//   - Meshes, Curves and Lattices each return a Mismatch; None means the
//     inputs are equivalent.
//   - Inputs are read through MeshSource, CurvesSource and LatticeSource and
//     are never mutated or retained.
//   - Values compare componentwise and inclusively: |a-b| <= threshold.
//     Integer, boolean and byte-color attributes compare exactly. NaN is
//     never equal, so geometry holding NaN does not equal itself.
//
// How
//
//  1. Counts and attribute schemas are compared first.
//  2. Every value channel is clustered under the threshold, per domain, and
//     the class sizes of both inputs must agree.
//  3. Local signatures (edge endpoints, face loops, curve sequences) must
//     agree over those classes, first on topology alone and then with the
//     element's own attribute classes added.
//  4. Classes are refined over a labeled graph (color refinement), and a
//     bijection is resolved by propagation with bounded individualization
//     for symmetric inputs. Meshes use an incidence graph of vertices and
//     face corners whose directed corner cycles carry the winding; curves
//     link consecutive points; lattices link axis neighbors.
//  5. Values and higher-order elements are verified under the bijection.
//
// Policies
//
//   - Faces must keep their winding unless WithFlippedFaces(true).
//   - Curves may be reversed unless WithReversedCurves(false); handle pairs
//     then swap and custom knots are mirrored.
//   - Lattice points may follow an axis reversal, never an axis exchange.
//   - WithRelativeTolerance scales the threshold by the larger magnitude.
//
// Determinism
//
//	Channels, elements and candidates are visited in index and name order,
//	and ties pick the smallest id, so the reported Mismatch is the same on
//	every run and for every worker count. Comparing A with B and B with A
//	agrees on whether a mismatch exists while the individualization budget
//	suffices; the kind reported may differ.
//
// Limits
//
//	Color refinement cannot separate every pair of non-isomorphic symmetric
//	structures. Individualization covers this for small symmetric groups;
//	beyond WithMaxBacktrack backtracks the result is VertexCorrespondence or
//	PointCorrespondence.
//
//	Value classes chain: with a large threshold, values that are not within
//	the threshold of each other may share a class. The bijection search
//	therefore checks values pair by pair and verifies every complete
//	mapping before accepting it. A match found at one threshold is found at
//	every larger threshold unless the backtrack budget runs out.
//
// Errors
//
//	ErrNilGeometry, ErrBadThreshold, ErrOptionViolation and context errors
//	are caller faults. A mismatch is never returned as an error.
package compare

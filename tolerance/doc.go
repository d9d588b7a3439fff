// Package tolerance decides whether two numeric values are "the same" for
// geometry comparison purposes.
//
// What:
//
//   - Equal / EqualVec / EqualSlice / EqualColor compare scalars, r3.Vector
//     positions, flat component slices and RGBA colors.
//   - Tolerance bundles a threshold with a Mode (Absolute or Relative).
//
// Semantics:
//
//   - Absolute (default): |a-b| <= threshold, inclusive.
//   - Relative:           |a-b| <= threshold·max(|a|,|b|), threshold < 1.
//   - Vectors are compared componentwise; there is no aggregate distance.
//   - threshold == 0 degenerates to exact equality.
//   - NaN on either side is unequal to everything, itself included.
//
// Complexity: O(1) per scalar, O(k) per k-component value. No allocations.
package tolerance

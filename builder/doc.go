// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// Package builder produces deterministic geometry fixtures for the comparison
// engine and its tests: polygon meshes, curve networks and lattices, plus
// index-renumbering variants that keep the geometry equivalent.
//
// Components:
//
//   - Fixtures:
//     – Platonic:  the five regular solids as outward-wound polygon meshes.
//     – Grid:      a rows×cols quad sheet in the XY plane.
//     – Helix:     one open curve with non-uniform custom knots.
//     – Circles:   stacked cyclic curves of growing radius.
//     – Box:       a u×v×w lattice spanning [-1,1]^3.
//   - Variants (equivalent geometry, new indices):
//     – RenumberMesh, ShuffleMesh, ShuffleCurves, FlipLattice.
//   - Defects (non-equivalent geometry):
//     – Displace, MovePoint, DropFace, FlipFaces.
//   - Options:
//     – WithSeed / WithRand:   random source for Shuffle* variants.
//     – WithScale / WithCenter: affine placement of fixtures.
//     – WithAttributes:         attach sample attributes on every domain.
//
// Guarantees:
//
//   - Fixtures never use randomness; the same call yields the same geometry.
//   - Variants never mutate their input and carry every attribute along with
//     its element (corner values follow corners, handle pairs swap on
//     reversed curves, custom knots are mirrored).
//   - Invalid option values panic in the WithX constructor; invalid build
//     parameters return errors wrapping the sentinels in errors.go.
package builder

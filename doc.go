// Package geocmp compares geometry: polygon meshes, curve networks and
// deformation lattices. Two inputs are equal when some renumbering of
// their elements makes every count, attribute and position agree within a
// threshold; otherwise the first Mismatch kind found is reported.
//
// 🚀 What is geocmp?
//
//	A pure-Go comparison engine that brings together:
//		• Containers: mesh, curves, lattice, with named typed attributes
//		• Value classes: tolerance-aware clustering of positions and attributes
//		• Colour refinement: 1-WL rounds over incidence and curve graphs
//		• Bijections: propagation with bounded individualization
//		• Fixtures: Platonic solids, grids, helices, circles and boxes,
//		  plus renumbered, shuffled and defective variants
//
// Under the hood the work is split into subpackages:
//
//	attribute/   domains, value types and the per-container attribute Set
//	mesh/        vertices, edges, face loops and corners
//	curves/      control points grouped into curves, custom knots
//	lattice/     U×V×W grids of weighted points and their index math
//	tolerance/   absolute and relative thresholds, inclusive comparison
//	fingerprint/ value classes, class balance, palettes and refinement
//	bijection/   class-respecting one-to-one maps from refined colours
//	compare/     Meshes, Curves and Lattices, options, logging
//	builder/     deterministic fixtures and their variants
//
// Quick example:
//
//	cube, _ := builder.Platonic(builder.Cube)
//	other, _ := builder.ShuffleMesh(cube, builder.WithSeed(1))
//	m, err := compare.Meshes(cube, other, 1e-6)
//	// m == compare.None, err == nil
//
//	go get github.com/katalvlaran/geocmp
package geocmp

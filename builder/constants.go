// SPDX-License-Identifier: MIT
// Package: geocmp/builder
//
// constants.go — method tokens and minimum sizes.

package builder

// Method tokens prefix error messages.
const (
	MethodPlatonic      = "Platonic"
	MethodGrid          = "Grid"
	MethodHelix         = "Helix"
	MethodCircles       = "Circles"
	MethodBox           = "Box"
	MethodRenumberMesh  = "RenumberMesh"
	MethodShuffleMesh   = "ShuffleMesh"
	MethodShuffleCurves = "ShuffleCurves"
	MethodFlipLattice   = "FlipLattice"
	MethodDisplace      = "Displace"
	MethodMovePoint     = "MovePoint"
	MethodDropFace      = "DropFace"
	MethodFlipFaces     = "FlipFaces"
)

// Minimum sizes accepted by the fixtures.
const (
	MinGridCells    = 1 // rows and cols of Grid
	MinHelixPoints  = 2 // points of Helix
	MinCirclePoints = 3 // points per circle of Circles
	MinCircles      = 1 // curves of Circles
	MinLatticeAxis  = 1 // every axis of Box
)

// Fixture shape constants.
const (
	helixTurns    = 2.0  // full turns of Helix
	helixRise     = 0.5  // Z rise per turn
	circleSpacing = 0.5  // Z gap and radius step between circles
	handleLength  = 0.25 // handle offset along the tangent
)

const defaultScale = 1.0

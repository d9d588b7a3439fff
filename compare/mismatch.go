package compare

import "strconv"

// Mismatch names the first defect found by a comparison. The zero value
// None means the inputs are equivalent under the threshold.
type Mismatch uint8

const (
	None Mismatch = iota

	// Element counts.
	NumVerts
	NumEdges
	NumFaces
	NumCorners
	NumPoints
	NumCurves
	LatticeResolution

	// Attribute names, types or domains differ.
	AttributeSchema

	// Values beyond the threshold.
	Positions
	VertexAttributes
	EdgeAttributes
	FaceAttributes
	CornerAttributes
	PointAttributes
	CurveAttributes
	Knots
	LatticeWeights

	// No bijection between the vertices or points.
	VertexCorrespondence
	PointCorrespondence

	// Connectivity breaks under the bijection.
	EdgeTopology
	FaceTopology
	CurveTopology
	LatticeTopology
)

var mismatchNames = [...]string{
	None:                 "none",
	NumVerts:             "number of vertices",
	NumEdges:             "number of edges",
	NumFaces:             "number of faces",
	NumCorners:           "number of corners",
	NumPoints:            "number of points",
	NumCurves:            "number of curves",
	LatticeResolution:    "lattice resolution",
	AttributeSchema:      "attribute schema",
	Positions:            "positions",
	VertexAttributes:     "vertex attributes",
	EdgeAttributes:       "edge attributes",
	FaceAttributes:       "face attributes",
	CornerAttributes:     "corner attributes",
	PointAttributes:      "point attributes",
	CurveAttributes:      "curve attributes",
	Knots:                "custom knots",
	LatticeWeights:       "lattice weights",
	VertexCorrespondence: "vertex correspondence",
	PointCorrespondence:  "point correspondence",
	EdgeTopology:         "edge topology",
	FaceTopology:         "face topology",
	CurveTopology:        "curve topology",
	LatticeTopology:      "lattice topology",
}

// String returns a short human-readable description. It is total: values
// outside the enum render as "Mismatch(n)".
func (m Mismatch) String() string {
	if int(m) < len(mismatchNames) {
		return mismatchNames[m]
	}
	return "Mismatch(" + strconv.Itoa(int(m)) + ")"
}

// Found reports whether m names an actual defect.
func (m Mismatch) Found() bool { return m != None }

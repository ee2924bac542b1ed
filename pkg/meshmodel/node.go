package meshmodel

// None marks an absent geometry, material, or parent index on a node.
const None = -1

// ShapeKind tags a flattened node with its source topology kind.
type ShapeKind uint8

const (
	KindUnknown ShapeKind = iota
	KindCompound
	KindCompSolid
	KindSolid
	KindShell
	KindEdge
)

func (k ShapeKind) String() string {
	switch k {
	case KindCompound:
		return "compound"
	case KindCompSolid:
		return "compsolid"
	case KindSolid:
		return "solid"
	case KindShell:
		return "shell"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Node is one flattened scene node. Transform is 4x4 column-major and
// relative to the parent node, not world-absolute; geometry and
// material fields index the model's dense arrays or hold None.
// Compound and composite-solid nodes never carry geometry, solid and
// shell nodes may carry triangles and lines, and edge nodes at most
// lines.
type Node struct {
	Name         string      `json:"name"`
	Transform    [16]float32 `json:"transform"`
	Kind         ShapeKind   `json:"kind"`
	TriGeometry  int         `json:"triGeometry"`
	LineGeometry int         `json:"lineGeometry"`
	Material     int         `json:"material"`
	Parent       int         `json:"parent"`
}

package triangulate

import (
	"github.com/voltwin-dev/brepmesh/pkg/geom"
	"github.com/voltwin-dev/brepmesh/pkg/meshmodel"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

// frame is one unit of flattening work: a shape occurrence, the index
// of its already-reserved parent node, and the parent's accumulated
// world transform.
type frame struct {
	shape       topo.Shape
	parentIndex int
	parentWorld geom.Trsf
}

// flattenRoot walks one free root with an explicit stack, emitting one
// scene node per shape occurrence. The stack bounds traversal memory
// for arbitrarily deep assemblies; children are pushed in reverse so
// siblings are emitted in document order.
func (p *pass) flattenRoot(root topo.Shape) error {
	stack := []frame{{shape: root, parentIndex: meshmodel.None, parentWorld: geom.Identity()}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Children reference this index before the node itself is
		// appended, so reserve it up front.
		meshIndex := len(p.nodes)
		world := f.shape.Location
		relative := f.parentWorld.Inverted().Mul(world)

		name, materialIndex, err := p.resolveAttributes(f.shape)
		if err != nil {
			return err
		}

		geometry := shapeGeometry{tri: meshmodel.None, line: meshmodel.None}
		switch f.shape.Kind() {
		case topo.KindCompound, topo.KindCompSolid:
			children := f.shape.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					shape:       children[i],
					parentIndex: meshIndex,
					parentWorld: world,
				})
			}
		case topo.KindSolid, topo.KindShell:
			geometry, err = p.tessellateShape(f.shape)
			if err != nil {
				return err
			}
		case topo.KindEdge:
			// Free edges are leaves rendered as lines only.
			geometry, err = p.tessellateEdge(f.shape)
			if err != nil {
				return err
			}
		default:
			// Unclassified topology becomes a bare leaf.
		}

		p.nodes = append(p.nodes, meshmodel.Node{
			Name:         name,
			Transform:    relative.Matrix(),
			Kind:         classifyKind(f.shape.Kind()),
			TriGeometry:  geometry.tri,
			LineGeometry: geometry.line,
			Material:     materialIndex,
			Parent:       f.parentIndex,
		})
	}
	return nil
}

func classifyKind(k topo.Kind) meshmodel.ShapeKind {
	switch k {
	case topo.KindCompound:
		return meshmodel.KindCompound
	case topo.KindCompSolid:
		return meshmodel.KindCompSolid
	case topo.KindSolid:
		return meshmodel.KindSolid
	case topo.KindShell:
		return meshmodel.KindShell
	case topo.KindEdge:
		return meshmodel.KindEdge
	default:
		return meshmodel.KindUnknown
	}
}

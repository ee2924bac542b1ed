package topo

import (
	"github.com/voltwin-dev/brepmesh/pkg/geom"
)

// boundsProbeGrid is the sampling density used to bound parametric
// geometry. Exact bounds are unnecessary: the box only drives
// deflection derivation.
const boundsProbeGrid = 8

// BoundingBox computes an axis-aligned bounding box of the shape in
// the frame of its own location by probing faces, edges, and implicit
// fields in its subtree.
func BoundingBox(s Shape) geom.Box {
	box := geom.EmptyBox()
	if s.IsNil() {
		return box
	}

	if f := s.T.Field(); f != nil {
		return box.Union(f.Bounds().Transform(s.Location))
	}

	for _, face := range Explore(s, KindFace) {
		surf := face.T.Surface()
		if surf == nil {
			continue
		}
		umin, umax, vmin, vmax := surf.Domain()
		for i := 0; i <= boundsProbeGrid; i++ {
			u := umin + (umax-umin)*float64(i)/boundsProbeGrid
			for j := 0; j <= boundsProbeGrid; j++ {
				v := vmin + (vmax-vmin)*float64(j)/boundsProbeGrid
				box = box.Add(face.Location.Transform(surf.Point(u, v)))
			}
		}
	}

	for _, edge := range Explore(s, KindEdge) {
		curve := edge.T.Curve()
		if curve == nil {
			continue
		}
		first, last := curve.Domain()
		for i := 0; i <= boundsProbeGrid; i++ {
			t := first + (last-first)*float64(i)/boundsProbeGrid
			box = box.Add(edge.Location.Transform(curve.Point(t)))
		}
	}

	return box
}

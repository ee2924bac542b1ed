package triangulate

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/voltwin-dev/brepmesh/pkg/geom"
	"github.com/voltwin-dev/brepmesh/pkg/mesher"
	"github.com/voltwin-dev/brepmesh/pkg/meshmodel"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

// tessellateShape tessellates a solid or shell and extracts its
// geometry buffers, memoized by topology identity: repeat visits of a
// shared shape return the previously assigned indices without invoking
// the mesher again. Geometry is stored in the shape's un-located
// frame; every occurrence applies its own transform at the node level.
func (p *pass) tessellateShape(s topo.Shape) (shapeGeometry, error) {
	if info, ok := p.processed[s.T]; ok {
		return info, nil
	}
	info := shapeGeometry{tri: meshmodel.None, line: meshmodel.None}

	box := topo.BoundingBox(s)
	deflection := geom.Deflection(box, deviationCoefficient, maxChordalDeviation)
	params := mesher.Params{
		LinearDeflection:  deflection,
		Relative:          true,
		AngularDeflection: angularDeflection,
		Parallel:          true,
	}
	if err := p.mesher.MeshShape(s, params); err != nil {
		return info, fmt.Errorf("mesh %s: %w", s.Kind(), err)
	}

	var tri meshmodel.TriGeometry
	var line meshmodel.LineGeometry
	parentInv := s.Location.Inverted()
	// Edges shared by two faces of this shape contribute one polyline.
	seenEdges := make(map[*topo.TShape]struct{})

	for _, face := range topo.Explore(s, topo.KindFace) {
		faceTri := face.T.Triangulation()
		if faceTri != nil {
			extractFace(&tri, face, faceTri, parentInv)
		}
		p.extractFaceEdges(&line, face, faceTri, parentInv, deflection, seenEdges)
	}

	if len(tri.Positions) > 0 && len(tri.Indices) > 0 {
		id := len(p.triGeoms)
		p.triGeoms[s.T] = triGeometryInfo{id: id, geometry: tri}
		info.tri = id
	}
	if len(line.Positions) > 0 {
		id := len(p.lineGeoms)
		p.lineGeoms[s.T] = lineGeometryInfo{id: id, geometry: line}
		info.line = id
	}
	p.processed[s.T] = info
	return info, nil
}

// extractFace appends one face's triangulation to the shape buffer:
// positions in the shape-relative frame, normals corrected for face
// orientation and transform handedness, UVs normalized to the face's
// parameter box, and indices offset by the running vertex count with
// the winding flipped for reversed faces.
func extractFace(out *meshmodel.TriGeometry, face topo.Shape, tri *topo.Triangulation, parentInv geom.Trsf) {
	relative := parentInv.Mul(face.Location)
	offset := uint32(len(out.Positions) / 3)
	out.SubmeshIndices = append(out.SubmeshIndices, uint32(tri.NodeCount()))

	for _, n := range tri.Nodes {
		pt := relative.Transform(n)
		out.Positions = append(out.Positions, float32(pt.X), float32(pt.Y), float32(pt.Z))
	}

	// A reversed face flips the normal, and so does a mirroring
	// relative transform; both at once cancel out. Exactly one of the
	// normal flip and the winding flip applies per cause, never both.
	flip := face.Reversed != (relative.Det() < 0)
	for _, n := range tri.Normals {
		if flip {
			n = r3.Scale(-1, n)
		}
		d := relative.TransformDir(n)
		out.Normals = append(out.Normals, float32(d.X), float32(d.Y), float32(d.Z))
	}

	umin, umax, vmin, vmax := faceUVBounds(face, tri)
	du := umax - umin
	dv := vmax - vmin
	for _, uv := range tri.UVs {
		var u, v float64
		// A zero-width parameter range degenerates to 0.
		if du > 0 {
			u = (uv[0] - umin) / du
		}
		if dv > 0 {
			v = (uv[1] - vmin) / dv
		}
		out.UVs = append(out.UVs, float32(u), float32(v))
	}

	for _, t := range tri.Triangles {
		if face.Reversed {
			out.Indices = append(out.Indices,
				offset+uint32(t[0]), offset+uint32(t[2]), offset+uint32(t[1]))
		} else {
			out.Indices = append(out.Indices,
				offset+uint32(t[0]), offset+uint32(t[1]), offset+uint32(t[2]))
		}
	}
}

// extractFaceEdges appends a polyline for each not-yet-visited edge of
// the face, preferring the boundary polygon on the face triangulation
// and falling back to adaptive curve sampling.
func (p *pass) extractFaceEdges(out *meshmodel.LineGeometry, face topo.Shape, faceTri *topo.Triangulation, parentInv geom.Trsf, deflection float64, seen map[*topo.TShape]struct{}) {
	for _, edge := range topo.Explore(face, topo.KindEdge) {
		if _, ok := seen[edge.T]; ok {
			continue
		}
		seen[edge.T] = struct{}{}

		if faceTri != nil {
			if poly := edge.T.PolygonOnTriangulation(faceTri); poly != nil {
				if len(poly.Nodes) < 2 {
					p.log.Debug("skipping degenerate boundary polygon",
						zap.Int("nodes", len(poly.Nodes)))
					continue
				}
				// Polygon nodes index the face triangulation, so they
				// live in the face frame, not the edge frame.
				relative := parentInv.Mul(face.Location)
				out.SubmeshIndices = append(out.SubmeshIndices, uint32((len(poly.Nodes)-1)*2))
				for i := 0; i+1 < len(poly.Nodes); i++ {
					appendSegment(out,
						relative.Transform(faceTri.Nodes[poly.Nodes[i]]),
						relative.Transform(faceTri.Nodes[poly.Nodes[i+1]]))
				}
				continue
			}
		}

		curve := edge.T.Curve()
		if curve == nil {
			p.log.Debug("skipping edge with no polygon and no curve")
			continue
		}
		relative := parentInv.Mul(edge.Location)
		points := geom.SampleCurve(curve, angularDeflection, deflection)
		if len(points) < 2 {
			p.log.Debug("skipping degenerate edge sampling",
				zap.Int("points", len(points)))
			continue
		}
		out.SubmeshIndices = append(out.SubmeshIndices, uint32((len(points)-1)*2))
		for i := 0; i+1 < len(points); i++ {
			appendSegment(out, relative.Transform(points[i]), relative.Transform(points[i+1]))
		}
	}
}

// tessellateEdge builds line geometry for a free root-level edge by
// sampling its curve, memoized by identity like solid tessellation.
func (p *pass) tessellateEdge(s topo.Shape) (shapeGeometry, error) {
	if info, ok := p.processed[s.T]; ok {
		return info, nil
	}
	info := shapeGeometry{tri: meshmodel.None, line: meshmodel.None}

	curve := s.T.Curve()
	if curve == nil {
		p.processed[s.T] = info
		return info, nil
	}

	deflection := geom.Deflection(topo.BoundingBox(s), deviationCoefficient, maxChordalDeviation)
	points := geom.SampleCurve(curve, angularDeflection, deflection)
	if len(points) < 2 {
		p.log.Debug("skipping degenerate free edge", zap.Int("points", len(points)))
		p.processed[s.T] = info
		return info, nil
	}

	var line meshmodel.LineGeometry
	line.SubmeshIndices = append(line.SubmeshIndices, uint32((len(points)-1)*2))
	for i := 0; i+1 < len(points); i++ {
		appendSegment(&line, points[i], points[i+1])
	}

	id := len(p.lineGeoms)
	p.lineGeoms[s.T] = lineGeometryInfo{id: id, geometry: line}
	info.line = id
	p.processed[s.T] = info
	return info, nil
}

func appendSegment(out *meshmodel.LineGeometry, a, b r3.Vec) {
	out.Positions = append(out.Positions,
		float32(a.X), float32(a.Y), float32(a.Z),
		float32(b.X), float32(b.Y), float32(b.Z))
}

// faceUVBounds returns the face's UV parameter box: the surface domain
// when present, otherwise the bounds of the triangulation's own UVs.
func faceUVBounds(face topo.Shape, tri *topo.Triangulation) (umin, umax, vmin, vmax float64) {
	if surf := face.T.Surface(); surf != nil {
		return surf.Domain()
	}
	if len(tri.UVs) == 0 {
		return 0, 0, 0, 0
	}
	umin, vmin = tri.UVs[0][0], tri.UVs[0][1]
	umax, vmax = umin, vmin
	for _, uv := range tri.UVs[1:] {
		umin = min(umin, uv[0])
		umax = max(umax, uv[0])
		vmin = min(vmin, uv[1])
		vmax = max(vmax, uv[1])
	}
	return umin, umax, vmin, vmax
}

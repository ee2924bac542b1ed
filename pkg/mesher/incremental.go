package mesher

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/voltwin-dev/brepmesh/pkg/geom"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

// maxGridSubdivisions caps the tessellation grid along one parameter
// axis. 256 segments resolve any tolerance this module derives.
const maxGridSubdivisions = 256

// Incremental is the grid mesher for parametric faces. Each face is
// subdivided in UV until both tolerances hold, then triangulated as a
// regular grid. Faces without a surface are left untouched (implicit
// solids are handled by a volume mesher, see fieldmesh).
type Incremental struct{}

var _ Mesher = (*Incremental)(nil)

// NewIncremental returns the grid mesher.
func NewIncremental() *Incremental {
	return &Incremental{}
}

// MeshShape tessellates every face in the shape's subtree. With
// p.Parallel set, faces are meshed concurrently; attachment side
// tables are safe for that.
func (m *Incremental) MeshShape(s topo.Shape, p Params) error {
	faces := topo.Explore(s, topo.KindFace)
	if !p.Parallel || len(faces) < 2 {
		for _, f := range faces {
			meshFace(f, p)
		}
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(len(faces))
	for _, f := range faces {
		go func(f topo.Shape) {
			defer wg.Done()
			meshFace(f, p)
		}(f)
	}
	wg.Wait()
	return nil
}

// meshFace attaches a grid triangulation to one face and boundary
// polygons to its four grid-ordered edges when present.
func meshFace(face topo.Shape, p Params) {
	surf := face.T.Surface()
	if surf == nil {
		return
	}
	umin, umax, vmin, vmax := surf.Domain()
	nu := axisSubdivisions(func(t, s float64) r3.Vec {
		return surf.Point(t, vmin+(vmax-vmin)*s)
	}, umin, umax, p)
	nv := axisSubdivisions(func(t, s float64) r3.Vec {
		return surf.Point(umin+(umax-umin)*s, t)
	}, vmin, vmax, p)

	tri := &topo.Triangulation{
		Nodes:   make([]r3.Vec, 0, (nu+1)*(nv+1)),
		Normals: make([]r3.Vec, 0, (nu+1)*(nv+1)),
		UVs:     make([][2]float64, 0, (nu+1)*(nv+1)),
	}
	for j := 0; j <= nv; j++ {
		v := vmin + (vmax-vmin)*float64(j)/float64(nv)
		for i := 0; i <= nu; i++ {
			u := umin + (umax-umin)*float64(i)/float64(nu)
			tri.Nodes = append(tri.Nodes, surf.Point(u, v))
			tri.Normals = append(tri.Normals, geom.SurfaceNormal(surf, u, v))
			tri.UVs = append(tri.UVs, [2]float64{u, v})
		}
	}

	idx := func(i, j int) int { return j*(nu+1) + i }
	tri.Triangles = make([][3]int, 0, 2*nu*nv)
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			n00 := idx(i, j)
			n10 := idx(i+1, j)
			n01 := idx(i, j+1)
			n11 := idx(i+1, j+1)
			tri.Triangles = append(tri.Triangles, [3]int{n00, n10, n11}, [3]int{n00, n11, n01})
		}
	}

	face.T.SetTriangulation(tri)
	attachBoundaryPolygons(face, tri, nu, nv)
}

// attachBoundaryPolygons records, for each of the face's four edges in
// NewFace grid order, the run of triangulation nodes along its grid
// side. Faces with any other edge count get no polygons and their
// edges fall back to curve sampling downstream.
func attachBoundaryPolygons(face topo.Shape, tri *topo.Triangulation, nu, nv int) {
	edges := face.Children()
	if len(edges) != 4 {
		return
	}
	idx := func(i, j int) int { return j*(nu+1) + i }

	sides := make([][]int, 4)
	for i := 0; i <= nu; i++ {
		sides[0] = append(sides[0], idx(i, 0))  // v = vmin
		sides[2] = append(sides[2], idx(i, nv)) // v = vmax
	}
	for j := 0; j <= nv; j++ {
		sides[1] = append(sides[1], idx(nu, j)) // u = umax
		sides[3] = append(sides[3], idx(0, j))  // u = umin
	}
	for i, e := range edges {
		if e.Kind() == topo.KindEdge {
			e.T.AddPolygon(tri, sides[i])
		}
	}
}

// axisSubdivisions doubles the segment count along one parameter axis
// until scan lines across the surface satisfy both tolerances.
func axisSubdivisions(eval func(t, scan float64) r3.Vec, tmin, tmax float64, p Params) int {
	scans := []float64{0, 0.5, 1}
	n := 1
	for n < maxGridSubdivisions {
		if axisWithinTolerance(eval, tmin, tmax, n, scans, p) {
			break
		}
		n *= 2
	}
	return n
}

func axisWithinTolerance(eval func(t, scan float64) r3.Vec, tmin, tmax float64, n int, scans []float64, p Params) bool {
	step := (tmax - tmin) / float64(n)
	for _, s := range scans {
		prev := eval(tmin, s)
		for i := 0; i < n; i++ {
			a := tmin + step*float64(i)
			b := a + step
			pa := eval(a, s)
			pb := eval(b, s)
			pm := eval((a+b)/2, s)
			if geom.ChordDeviation(pa, pb, pm) > p.LinearDeflection {
				return false
			}
			if i > 0 && geom.TurnAngle(prev, pa, pb) > p.AngularDeflection {
				return false
			}
			prev = pa
		}
	}
	return true
}

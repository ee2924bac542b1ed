package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is a bounded parametric surface evaluated over a UV domain.
// Implementations must be safe for concurrent evaluation.
type Surface interface {
	// Domain returns the parameter bounds of the surface patch.
	Domain() (umin, umax, vmin, vmax float64)
	// Point evaluates the surface at (u, v).
	Point(u, v float64) r3.Vec
	// D1 evaluates the surface point and its first partial derivatives.
	D1(u, v float64) (p, du, dv r3.Vec)
}

// Plane is a bounded planar patch spanned by two direction vectors.
type Plane struct {
	Origin r3.Vec
	UDir   r3.Vec
	VDir   r3.Vec
	UMin   float64
	UMax   float64
	VMin   float64
	VMax   float64
}

func (p Plane) Domain() (float64, float64, float64, float64) {
	return p.UMin, p.UMax, p.VMin, p.VMax
}

func (p Plane) Point(u, v float64) r3.Vec {
	return r3.Add(p.Origin, r3.Add(r3.Scale(u, p.UDir), r3.Scale(v, p.VDir)))
}

func (p Plane) D1(u, v float64) (r3.Vec, r3.Vec, r3.Vec) {
	return p.Point(u, v), p.UDir, p.VDir
}

// Cylinder is a bounded cylindrical patch. U is the angle around Axis
// measured from Ref, V is the height along Axis. Axis and Ref must be
// unit length and perpendicular.
type Cylinder struct {
	Origin r3.Vec
	Axis   r3.Vec
	Ref    r3.Vec
	Radius float64
	UMin   float64
	UMax   float64
	VMin   float64
	VMax   float64
}

func (c Cylinder) Domain() (float64, float64, float64, float64) {
	return c.UMin, c.UMax, c.VMin, c.VMax
}

func (c Cylinder) Point(u, v float64) r3.Vec {
	y := r3.Cross(c.Axis, c.Ref)
	radial := r3.Add(r3.Scale(math.Cos(u), c.Ref), r3.Scale(math.Sin(u), y))
	return r3.Add(c.Origin, r3.Add(r3.Scale(c.Radius, radial), r3.Scale(v, c.Axis)))
}

func (c Cylinder) D1(u, v float64) (r3.Vec, r3.Vec, r3.Vec) {
	y := r3.Cross(c.Axis, c.Ref)
	sin, cos := math.Sincos(u)
	radial := r3.Add(r3.Scale(cos, c.Ref), r3.Scale(sin, y))
	du := r3.Scale(c.Radius, r3.Add(r3.Scale(-sin, c.Ref), r3.Scale(cos, y)))
	p := r3.Add(c.Origin, r3.Add(r3.Scale(c.Radius, radial), r3.Scale(v, c.Axis)))
	return p, du, c.Axis
}

// SurfaceNormal returns the unit geometric normal cross(du, dv) at (u, v).
// A degenerate parameterization yields the zero vector.
func SurfaceNormal(s Surface, u, v float64) r3.Vec {
	_, du, dv := s.D1(u, v)
	n := r3.Cross(du, dv)
	if norm := r3.Norm(n); norm > 0 {
		return r3.Scale(1/norm, n)
	}
	return r3.Vec{}
}

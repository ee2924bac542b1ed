package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Trsf is an affine placement transform: a 3x3 linear part plus a
// translation. Locations in a shape tree compose Trsf values; rigid
// placements are the common case but mirroring and scaling are allowed.
type Trsf struct {
	// linear part, row-major
	m [9]float64
	t r3.Vec
}

// Identity returns the identity transform.
func Identity() Trsf {
	return Trsf{m: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// Translation returns a pure translation by v.
func Translation(v r3.Vec) Trsf {
	t := Identity()
	t.t = v
	return t
}

// Rotation returns a rotation of angle radians about the given axis
// through the origin. The axis need not be normalized.
func Rotation(axis r3.Vec, angle float64) Trsf {
	rot := r3.NewRotation(angle, axis)
	t := Identity()
	ex := rot.Rotate(r3.Vec{X: 1})
	ey := rot.Rotate(r3.Vec{Y: 1})
	ez := rot.Rotate(r3.Vec{Z: 1})
	t.m = [9]float64{
		ex.X, ey.X, ez.X,
		ex.Y, ey.Y, ez.Y,
		ex.Z, ey.Z, ez.Z,
	}
	return t
}

// Scaling returns a transform scaling each axis independently.
// Negative factors produce a mirroring transform (negative determinant).
func Scaling(sx, sy, sz float64) Trsf {
	return Trsf{m: [9]float64{sx, 0, 0, 0, sy, 0, 0, 0, sz}}
}

// Mul composes transforms: (a.Mul(b)).Transform(p) == a.Transform(b.Transform(p)).
func (t Trsf) Mul(o Trsf) Trsf {
	var out Trsf
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.m[r*3+c] = t.m[r*3]*o.m[c] + t.m[r*3+1]*o.m[3+c] + t.m[r*3+2]*o.m[6+c]
		}
	}
	out.t = t.Transform(o.t)
	return out
}

// Transform applies the full affine transform to a point.
func (t Trsf) Transform(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: t.m[0]*p.X + t.m[1]*p.Y + t.m[2]*p.Z + t.t.X,
		Y: t.m[3]*p.X + t.m[4]*p.Y + t.m[5]*p.Z + t.t.Y,
		Z: t.m[6]*p.X + t.m[7]*p.Y + t.m[8]*p.Z + t.t.Z,
	}
}

// TransformDir applies only the linear part and renormalizes the result.
// Used for normals and tangents, which carry no translation.
func (t Trsf) TransformDir(d r3.Vec) r3.Vec {
	v := r3.Vec{
		X: t.m[0]*d.X + t.m[1]*d.Y + t.m[2]*d.Z,
		Y: t.m[3]*d.X + t.m[4]*d.Y + t.m[5]*d.Z,
		Z: t.m[6]*d.X + t.m[7]*d.Y + t.m[8]*d.Z,
	}
	if n := r3.Norm(v); n > 0 {
		return r3.Scale(1/n, v)
	}
	return v
}

// Det returns the determinant of the linear part. A negative value
// indicates a handedness-flipping (mirroring) transform.
func (t Trsf) Det() float64 {
	return t.m[0]*(t.m[4]*t.m[8]-t.m[5]*t.m[7]) -
		t.m[1]*(t.m[3]*t.m[8]-t.m[5]*t.m[6]) +
		t.m[2]*(t.m[3]*t.m[7]-t.m[4]*t.m[6])
}

// Inverted returns the inverse transform. The linear part must be
// invertible; a singular transform yields the identity.
func (t Trsf) Inverted() Trsf {
	det := t.Det()
	if det == 0 || math.IsNaN(det) {
		return Identity()
	}
	inv := 1 / det
	var o Trsf
	o.m[0] = (t.m[4]*t.m[8] - t.m[5]*t.m[7]) * inv
	o.m[1] = (t.m[2]*t.m[7] - t.m[1]*t.m[8]) * inv
	o.m[2] = (t.m[1]*t.m[5] - t.m[2]*t.m[4]) * inv
	o.m[3] = (t.m[5]*t.m[6] - t.m[3]*t.m[8]) * inv
	o.m[4] = (t.m[0]*t.m[8] - t.m[2]*t.m[6]) * inv
	o.m[5] = (t.m[2]*t.m[3] - t.m[0]*t.m[5]) * inv
	o.m[6] = (t.m[3]*t.m[7] - t.m[4]*t.m[6]) * inv
	o.m[7] = (t.m[1]*t.m[6] - t.m[0]*t.m[7]) * inv
	o.m[8] = (t.m[0]*t.m[4] - t.m[1]*t.m[3]) * inv
	o.t = r3.Scale(-1, r3.Vec{
		X: o.m[0]*t.t.X + o.m[1]*t.t.Y + o.m[2]*t.t.Z,
		Y: o.m[3]*t.t.X + o.m[4]*t.t.Y + o.m[5]*t.t.Z,
		Z: o.m[6]*t.t.X + o.m[7]*t.t.Y + o.m[8]*t.t.Z,
	})
	return o
}

// Translation returns the translation component.
func (t Trsf) Translation() r3.Vec {
	return t.t
}

// Matrix returns the transform as a 4x4 column-major float32 matrix
// with an implicit (0,0,0,1) bottom row, ready for GPU upload.
func (t Trsf) Matrix() [16]float32 {
	var m [16]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[col*4+row] = float32(t.m[row*3+col])
		}
	}
	m[12] = float32(t.t.X)
	m[13] = float32(t.t.Y)
	m[14] = float32(t.t.Z)
	m[15] = 1
	return m
}

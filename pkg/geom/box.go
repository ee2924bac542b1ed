package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis-aligned bounding box. The zero value is not valid;
// use EmptyBox and grow it with Add or Union.
type Box struct {
	Min r3.Vec `json:"min"`
	Max r3.Vec `json:"max"`
}

// EmptyBox returns a box containing no points.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Add grows the box to contain point p.
func (b Box) Add(p r3.Vec) Box {
	return Box{
		Min: r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return b.Add(o.Min).Add(o.Max)
}

// Extent returns the box size along each axis, or zero for an empty box.
func (b Box) Extent() r3.Vec {
	if b.IsEmpty() {
		return r3.Vec{}
	}
	return r3.Sub(b.Max, b.Min)
}

// MaxExtent returns the largest axis extent.
func (b Box) MaxExtent() float64 {
	e := b.Extent()
	return math.Max(e.X, math.Max(e.Y, e.Z))
}

// Transform returns the axis-aligned box containing all eight
// transformed corners of b.
func (b Box) Transform(t Trsf) Box {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := 0; i < 8; i++ {
		c := r3.Vec{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z}
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out = out.Add(t.Transform(c))
	}
	return out
}

// Deflection derives a linear tessellation deflection from a bounding
// box: the largest extent scaled by coefficient, never below floor.
// An empty box yields the floor.
func Deflection(b Box, coefficient, floor float64) float64 {
	d := b.MaxExtent() * coefficient
	if d < floor {
		return floor
	}
	return d
}

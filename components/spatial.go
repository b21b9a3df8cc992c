package components

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float32 { return v.X*v.X + v.Y*v.Y }

// Len returns the length of v.
func (v Vec2) Len() float32 { return float32(math.Sqrt(float64(v.LenSq()))) }

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// BoundingBox is the axis-aligned container the particles live in.
// World space is y-up: Bottom < Top.
type BoundingBox struct {
	Left   float32
	Right  float32
	Bottom float32
	Top    float32
}

// Width returns Right - Left.
func (b BoundingBox) Width() float32 { return b.Right - b.Left }

// Height returns Top - Bottom.
func (b BoundingBox) Height() float32 { return b.Top - b.Bottom }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vec2 {
	return Vec2{X: (b.Left + b.Right) / 2, Y: (b.Bottom + b.Top) / 2}
}

// Contains reports whether p lies inside the box shrunk by margin on every side.
func (b BoundingBox) Contains(p Vec2, margin float32) bool {
	return p.X >= b.Left+margin && p.X <= b.Right-margin &&
		p.Y >= b.Bottom+margin && p.Y <= b.Top-margin
}

// Validate rejects boxes with non-positive extent or non-finite edges.
func (b BoundingBox) Validate() error {
	for _, f := range []struct {
		name string
		v    float32
	}{{"left", b.Left}, {"right", b.Right}, {"bottom", b.Bottom}, {"top", b.Top}} {
		if !isFinite(f.v) {
			return &FieldError{Field: "bbox." + f.name, Value: f.v, Err: ErrInvalidBoundingBox}
		}
	}
	if b.Right <= b.Left {
		return &FieldError{Field: "bbox.right", Value: b.Right, Err: ErrInvalidBoundingBox}
	}
	if b.Top <= b.Bottom {
		return &FieldError{Field: "bbox.top", Value: b.Top, Err: ErrInvalidBoundingBox}
	}
	return nil
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

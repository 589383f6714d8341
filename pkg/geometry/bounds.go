package geometry

import "math"

// Bounds represents an axis-aligned rectangle in surface coordinates
type Bounds struct {
	Min Vector2
	Max Vector2
}

// NewBounds creates bounds spanning from the origin to width x height
func NewBounds(width, height float64) Bounds {
	return Bounds{Max: Vector2{X: width, Y: height}}
}

// Size returns the dimensions of the bounds
func (b Bounds) Size() Vector2 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounds
func (b Bounds) Center() Vector2 {
	return b.Min.Midpoint(b.Max)
}

// Empty reports whether the bounds have no area
func (b Bounds) Empty() bool {
	size := b.Size()
	return size.X <= 0 || size.Y <= 0
}

// Contains reports whether p lies inside the bounds (edges included)
func (b Bounds) Contains(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Contain returns the largest rectangle with the given aspect (w x h) that
// fits inside b, centered. This is the "object-fit: contain" placement used
// for the photograph on the surface.
func (b Bounds) Contain(w, h float64) Bounds {
	if w <= 0 || h <= 0 || b.Empty() {
		return Bounds{Min: b.Center(), Max: b.Center()}
	}
	size := b.Size()
	scale := math.Min(size.X/w, size.Y/h)
	fitted := Vector2{X: w * scale, Y: h * scale}
	origin := b.Center().Sub(fitted.Mul(0.5))
	return Bounds{Min: origin, Max: origin.Add(fitted)}
}

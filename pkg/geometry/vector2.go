package geometry

import "math"

// Vector2 represents a 2D point or vector in surface pixel space
type Vector2 struct {
	X, Y float64
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Mul multiplies the vector by a scalar
func (v Vector2) Mul(scalar float64) Vector2 {
	return Vector2{
		X: v.X * scalar,
		Y: v.Y * scalar,
	}
}

// Length returns the magnitude of the vector
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two points
func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector stays zero.
func (v Vector2) Normalize() Vector2 {
	length := v.Length()
	if length == 0 {
		return Vector2{}
	}
	return v.Mul(1.0 / length)
}

// Perpendicular returns the vector rotated by 90 degrees.
// In screen coordinates (y grows downwards) this is a clockwise turn.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// Midpoint returns the point halfway between v and other
func (v Vector2) Midpoint(other Vector2) Vector2 {
	return Vector2{
		X: (v.X + other.X) / 2.0,
		Y: (v.Y + other.Y) / 2.0,
	}
}


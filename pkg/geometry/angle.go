package geometry

import "math"

// Segment is a straight line between two points
type Segment struct {
	Start Vector2
	End   Vector2
}

// Length returns the length of the segment
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// AngleDegrees returns the direction of the line p1->p2 in degrees,
// measured with atan2 in surface coordinates. The result lies in (-180, 180].
// Coincident points yield 0.
func AngleDegrees(p1, p2 Vector2) float64 {
	d := p2.Sub(p1)
	return NormalizeDegrees(math.Atan2(d.Y, d.X) * 180 / math.Pi)
}

// NormalizeDegrees maps an angle to the range (-180, 180]
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// PerpendicularBisector returns the segment through the midpoint of p1 and p2,
// turned 90 degrees from the p1->p2 direction and reaching halfLength to
// either side of the midpoint. If p1 == p2 the segment collapses onto the
// midpoint.
func PerpendicularBisector(p1, p2 Vector2, halfLength float64) Segment {
	mid := p1.Midpoint(p2)
	dir := p2.Sub(p1).Normalize().Perpendicular().Mul(halfLength)
	return Segment{
		Start: mid.Sub(dir),
		End:   mid.Add(dir),
	}
}

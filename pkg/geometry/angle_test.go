package geometry

import (
	"math"
	"testing"
)

func TestAngleDegreesAxes(t *testing.T) {
	origin := NewVector2(0, 0)
	tests := []struct {
		p        Vector2
		expected float64
	}{
		{NewVector2(10, 0), 0},
		{NewVector2(0, 10), 90},
		{NewVector2(-10, 0), 180},
		{NewVector2(0, -10), -90},
		{NewVector2(10, 10), 45},
	}

	for _, tt := range tests {
		angle := AngleDegrees(origin, tt.p)
		if math.Abs(angle-tt.expected) > 1e-10 {
			t.Errorf("AngleDegrees(%v, %v): expected %v, got %v", origin, tt.p, tt.expected, angle)
		}
	}
}

func TestAngleDegreesDegenerate(t *testing.T) {
	p := NewVector2(42, 17)
	if angle := AngleDegrees(p, p); angle != 0 {
		t.Errorf("AngleDegrees of coincident points: expected 0, got %v", angle)
	}
}

func TestAngleDegreesReversed(t *testing.T) {
	pairs := [][2]Vector2{
		{NewVector2(0, 0), NewVector2(100, 10)},
		{NewVector2(5, 5), NewVector2(-3, 12)},
		{NewVector2(10, 0), NewVector2(0, 0)},
		{NewVector2(3, 9), NewVector2(3, -1)},
	}

	for _, pair := range pairs {
		forward := AngleDegrees(pair[0], pair[1])
		backward := AngleDegrees(pair[1], pair[0])
		expected := NormalizeDegrees(forward + 180)
		if math.Abs(backward-expected) > 1e-9 {
			t.Errorf("reversed angle for %v: expected %v, got %v", pair, expected, backward)
		}
		if backward <= -180 || backward > 180 {
			t.Errorf("angle %v out of range (-180, 180]", backward)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := map[float64]float64{
		0:    0,
		180:  180,
		-180: 180,
		190:  -170,
		-190: 170,
		540:  180,
		-45:  -45,
	}

	for in, expected := range tests {
		if got := NormalizeDegrees(in); math.Abs(got-expected) > 1e-10 {
			t.Errorf("NormalizeDegrees(%v): expected %v, got %v", in, expected, got)
		}
	}
}

func TestPerpendicularBisector(t *testing.T) {
	seg := PerpendicularBisector(NewVector2(0, 0), NewVector2(100, 0), 50)

	if seg.Start.Midpoint(seg.End) != NewVector2(50, 0) {
		t.Errorf("bisector not centered on midpoint: %v", seg)
	}
	if math.Abs(seg.Length()-100) > 1e-10 {
		t.Errorf("bisector length: expected 100, got %v", seg.Length())
	}
	if math.Abs(seg.Start.X-50) > 1e-10 || math.Abs(seg.End.X-50) > 1e-10 {
		t.Errorf("bisector of a horizontal segment should be vertical: %v", seg)
	}
}

func TestPerpendicularBisectorDegenerate(t *testing.T) {
	p := NewVector2(7, 7)
	seg := PerpendicularBisector(p, p, 100)

	if seg.Start != p || seg.End != p {
		t.Errorf("degenerate bisector should collapse to %v, got %v", p, seg)
	}
}

package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/midline/pkg/geometry"
	"github.com/philipparndt/midline/pkg/landmark"
)

// SignificantDeviation is the threshold in degrees above which a midline
// deviation is flagged
const SignificantDeviation = 3.0

// ErrMissingLandmark is returned when a central incisor has not been placed
var ErrMissingLandmark = errors.New("missing landmark")

// Measurement contains the midline analysis of one set of landmarks
type Measurement struct {
	UpperAngle       float64 `json:"upperAngle"`
	LowerAngle       float64 `json:"lowerAngle"`
	MidlineDeviation float64 `json:"midlineDeviation"`
}

// CentralLines contains the two lines the measurement is computed from
type CentralLines struct {
	Upper geometry.Segment
	Lower geometry.Segment
}

// Lines returns the upper and lower central lines for a set of landmarks
func Lines(points map[landmark.ID]geometry.Vector2) (CentralLines, error) {
	for _, id := range landmark.Required() {
		if _, ok := points[id]; !ok {
			return CentralLines{}, fmt.Errorf("%w: %s", ErrMissingLandmark, id)
		}
	}

	return CentralLines{
		Upper: geometry.Segment{
			Start: points[landmark.UpperLeftCentral],
			End:   points[landmark.UpperRightCentral],
		},
		Lower: geometry.Segment{
			Start: points[landmark.LowerLeftCentral],
			End:   points[landmark.LowerRightCentral],
		},
	}, nil
}

// Compute calculates the upper and lower central line angles and their
// absolute difference. Lateral landmarks are not required.
func Compute(points map[landmark.ID]geometry.Vector2) (Measurement, error) {
	lines, err := Lines(points)
	if err != nil {
		return Measurement{}, err
	}

	upper := geometry.AngleDegrees(lines.Upper.Start, lines.Upper.End)
	lower := geometry.AngleDegrees(lines.Lower.Start, lines.Lower.End)

	return Measurement{
		UpperAngle:       upper,
		LowerAngle:       lower,
		MidlineDeviation: math.Abs(upper - lower),
	}, nil
}

// Rounded returns the measurement with every value rounded to one decimal
func (m Measurement) Rounded() Measurement {
	return Measurement{
		UpperAngle:       Round(m.UpperAngle),
		LowerAngle:       Round(m.LowerAngle),
		MidlineDeviation: Round(m.MidlineDeviation),
	}
}

// Significant reports whether the displayed deviation exceeds SignificantDeviation
func (m Measurement) Significant() bool {
	return Round(m.MidlineDeviation) > SignificantDeviation
}

// WrapsAround reports whether the two lines point in nearly opposite
// directions, in which case the deviation is larger than 180 degrees
func (m Measurement) WrapsAround() bool {
	return m.MidlineDeviation > 180
}

// Round rounds a value to one decimal place
func Round(value float64) float64 {
	return math.Round(value*10) / 10
}

// FormatDegrees formats an angle with one decimal, e.g. "5.7°"
func FormatDegrees(value float64) string {
	return fmt.Sprintf("%.1f°", Round(value))
}

// ReportLines returns the three result lines shown in reports
func (m Measurement) ReportLines() []string {
	return []string{
		"Upper Angle: " + FormatDegrees(m.UpperAngle),
		"Lower Angle: " + FormatDegrees(m.LowerAngle),
		"Midline Deviation: " + FormatDegrees(m.MidlineDeviation),
	}
}

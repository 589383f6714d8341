// Package scene describes what the analysis surface shows, independent of
// how it is rasterized. Building a scene resolves every style color, so the
// rasterizer only sees concrete RGBA values.
package scene

import (
	"image"
	"image/color"
	"sort"

	"github.com/philipparndt/midline/pkg/analysis"
	"github.com/philipparndt/midline/pkg/geometry"
	"github.com/philipparndt/midline/pkg/landmark"
)

// Overlay dimensions in surface pixels
const (
	MarkerRadius      = 8.0
	MarkerInnerRadius = 4.0
	LabelOffset       = 10.0
	LabelSize         = 10.0
	CentralLineWidth  = 2.0
	GuideLineWidth    = 1.0
	GuideHalfLength   = 100.0
)

// Input is a detached copy of the session values a scene is built from
type Input struct {
	Width       float64
	Height      float64
	Image       image.Image
	Points      map[landmark.ID]geometry.Vector2
	Measurement *analysis.Measurement
}

// Style holds the CSS color strings of the overlay
type Style struct {
	Background  string
	UpperArch   string
	LowerArch   string
	MarkerInner string
	Label       string
	LateralLine string
	Guide       string
}

// DefaultStyle returns the colors of the analysis surface
func DefaultStyle() Style {
	return Style{
		Background:  "#f3f4f6",
		UpperArch:   landmark.UpperColor,
		LowerArch:   landmark.LowerColor,
		MarkerInner: "#ffffff",
		Label:       "#000000",
		LateralLine: "#888888",
		Guide:       "#000000",
	}
}

// ImageLayer places the photograph inside the surface
type ImageLayer struct {
	Source image.Image
	Bounds geometry.Bounds
}

// Line is a stroked segment. An empty Dash draws a solid line.
type Line struct {
	geometry.Segment
	Color color.RGBA
	Width float64
	Dash  []float64
}

// Circle is a filled disc
type Circle struct {
	Center geometry.Vector2
	Radius float64
	Fill   color.RGBA
}

// Label is text centered horizontally on Anchor with its baseline at Anchor.Y
type Label struct {
	Anchor geometry.Vector2
	Text   string
	Size   float64
	Color  color.RGBA
}

// Scene is the resolved drawing list, painted in field order
type Scene struct {
	Width      float64
	Height     float64
	Background color.RGBA
	Image      *ImageLayer
	Lines      []Line
	Circles    []Circle
	Labels     []Label
	Guides     []Line
}

// Empty reports whether the scene has no drawable area
func (s *Scene) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Build resolves an input and a style into a scene
func Build(in Input, style Style) *Scene {
	sc := &Scene{
		Width:      in.Width,
		Height:     in.Height,
		Background: ResolveColor(style.Background, FallbackBackground),
	}

	if in.Image != nil {
		b := in.Image.Bounds()
		surface := geometry.NewBounds(in.Width, in.Height)
		sc.Image = &ImageLayer{
			Source: in.Image,
			Bounds: surface.Contain(float64(b.Dx()), float64(b.Dy())),
		}
	}

	upper := ResolveColor(style.UpperArch, FallbackForeground)
	lower := ResolveColor(style.LowerArch, FallbackForeground)

	if in.Measurement != nil {
		if lines, err := analysis.Lines(in.Points); err == nil {
			sc.Lines = append(sc.Lines,
				Line{Segment: lines.Upper, Color: upper, Width: CentralLineWidth},
				Line{Segment: lines.Lower, Color: lower, Width: CentralLineWidth},
			)
		}
	}

	inner := ResolveColor(style.MarkerInner, FallbackForeground)
	text := ResolveColor(style.Label, FallbackForeground)
	for _, id := range sortedIDs(in.Points) {
		p := in.Points[id]
		fill := upper
		if id.Arch() == landmark.Lower {
			fill = lower
		}
		sc.Circles = append(sc.Circles,
			Circle{Center: p, Radius: MarkerRadius, Fill: fill},
			Circle{Center: p, Radius: MarkerInnerRadius, Fill: inner},
		)
		sc.Labels = append(sc.Labels, Label{
			Anchor: geometry.NewVector2(p.X, p.Y-LabelOffset),
			Text:   id.Abbrev(),
			Size:   LabelSize,
			Color:  text,
		})
	}

	left, okLeft := in.Points[landmark.UpperLeftLateral]
	right, okRight := in.Points[landmark.UpperRightLateral]
	if okLeft && okRight {
		sc.Guides = append(sc.Guides, Line{
			Segment: geometry.Segment{Start: left, End: right},
			Color:   ResolveColor(style.LateralLine, FallbackForeground),
			Width:   GuideLineWidth,
			Dash:    []float64{2, 2},
		})
		bisector := geometry.PerpendicularBisector(left, right, GuideHalfLength)
		if bisector.Length() > 0 {
			sc.Guides = append(sc.Guides, Line{
				Segment: bisector,
				Color:   ResolveColor(style.Guide, FallbackForeground),
				Width:   GuideLineWidth,
				Dash:    []float64{5, 5},
			})
		}
	}

	return sc
}

func sortedIDs(points map[landmark.ID]geometry.Vector2) []landmark.ID {
	ids := make([]landmark.ID, 0, len(points))
	for id := range points {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Package render rasterizes a scene into an RGBA image.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/midline/internal/scene"
	"github.com/philipparndt/midline/pkg/geometry"
)

// DefaultScale is the supersampling factor used for report snapshots
const DefaultScale = 2.0

// ErrEmptyScene is returned when the scene has no drawable area
var ErrEmptyScene = errors.New("scene has no drawable area")

// Render draws sc at the given scale. A scale of 2 produces an image twice
// the surface size in each direction.
func Render(sc *scene.Scene, scale float64) (*image.RGBA, error) {
	if sc == nil || sc.Empty() {
		return nil, ErrEmptyScene
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("invalid render scale %v", scale)
	}

	width := int(math.Ceil(sc.Width * scale))
	height := int(math.Ceil(sc.Height * scale))
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	draw.Draw(img, img.Bounds(), &image.Uniform{C: sc.Background}, image.Point{}, draw.Src)

	if sc.Image != nil {
		drawImage(img, sc.Image, scale)
	}

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	for _, line := range sc.Lines {
		strokeLine(scanner, width, height, line, scale)
	}

	filler := rasterx.NewFiller(width, height, scanner)
	for _, c := range sc.Circles {
		fillCircle(filler, c, scale)
	}

	if len(sc.Labels) > 0 {
		labels, err := newLabelDrawer(img, scale)
		if err != nil {
			return nil, err
		}
		for _, label := range sc.Labels {
			if err := labels.draw(label); err != nil {
				return nil, err
			}
		}
	}

	for _, line := range sc.Guides {
		strokeLine(scanner, width, height, line, scale)
	}

	return img, nil
}

func drawImage(dst *image.RGBA, layer *scene.ImageLayer, scale float64) {
	if layer.Bounds.Empty() {
		return
	}
	r := image.Rect(
		int(math.Round(layer.Bounds.Min.X*scale)),
		int(math.Round(layer.Bounds.Min.Y*scale)),
		int(math.Round(layer.Bounds.Max.X*scale)),
		int(math.Round(layer.Bounds.Max.Y*scale)),
	)
	draw.CatmullRom.Scale(dst, r, layer.Source, layer.Source.Bounds(), draw.Over, nil)
}

func toFixed(p geometry.Vector2, scale float64) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X*scale, p.Y*scale)
}

func strokeLine(scanner rasterx.Scanner, width, height int, line scene.Line, scale float64) {
	if line.Length() == 0 || line.Width <= 0 {
		return
	}

	var dash []float64
	for _, d := range line.Dash {
		dash = append(dash, d*scale)
	}

	dasher := rasterx.NewDasher(width, height, scanner)
	dasher.SetStroke(
		fixed.Int26_6(line.Width*scale*64),
		fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap,
		rasterx.FlatGap,
		rasterx.Miter,
		dash, 0,
	)
	dasher.SetColor(line.Color)
	dasher.Start(toFixed(line.Start, scale))
	dasher.Line(toFixed(line.End, scale))
	dasher.Stop(false)
	dasher.Draw()
}

func fillCircle(filler *rasterx.Filler, c scene.Circle, scale float64) {
	if c.Radius <= 0 {
		return
	}
	filler.Clear()
	filler.SetColor(c.Fill)
	rasterx.AddCircle(c.Center.X*scale, c.Center.Y*scale, c.Radius*scale, filler)
	filler.Draw()
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

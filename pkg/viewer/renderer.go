package viewer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/midline/internal/render"
	"github.com/philipparndt/midline/internal/scene"
)

// Surface displays the analysis surface: the photograph, placed markers and
// guide lines. Taps are reported in surface coordinates.
type Surface struct {
	widget.BaseWidget
	width  float64
	height float64
	style  scene.Style
	onTap  func(x, y float64)
	log    *logrus.Entry

	mu    sync.Mutex
	input scene.Input
}

// NewSurface creates a surface widget of the given size in surface units
func NewSurface(width, height float64, logger *logrus.Logger) *Surface {
	s := &Surface{
		width:  width,
		height: height,
		style:  scene.DefaultStyle(),
		input:  scene.Input{Width: width, Height: height},
		log:    logger.WithField("component", "surface"),
	}
	s.ExtendBaseWidget(s)
	return s
}

// SetOnTap sets the callback invoked with the surface position of a tap
func (s *Surface) SetOnTap(callback func(x, y float64)) {
	s.onTap = callback
}

// Update replaces the drawn content and redraws
func (s *Surface) Update(in scene.Input) {
	s.mu.Lock()
	s.input = in
	s.mu.Unlock()
	s.Refresh()
}

// Tapped handles tap events for marker placement. Positions are passed on
// unclamped.
func (s *Surface) Tapped(event *fyne.PointEvent) {
	if s.onTap == nil {
		return
	}
	s.onTap(float64(event.Position.X), float64(event.Position.Y))
}

// draw renders the current content into a raster of w by h pixels
func (s *Surface) draw(w, h int) image.Image {
	s.mu.Lock()
	in := s.input
	s.mu.Unlock()

	scale := math.Min(float64(w)/s.width, float64(h)/s.height)
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	img, err := render.Render(scene.Build(in, s.style), scale)
	if err != nil {
		s.log.WithError(err).Warn("failed to render surface")
		fallback := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := range fallback.Pix {
			fallback.Pix[i] = 0xff
		}
		return fallback
	}
	return img
}

// CreateRenderer creates the renderer for the widget
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	raster := canvas.NewRaster(s.draw)
	raster.ScaleMode = canvas.ImageScaleSmooth

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	border.StrokeWidth = 1

	return &surfaceRenderer{
		surface: s,
		raster:  raster,
		border:  border,
		objects: []fyne.CanvasObject{raster, border},
	}
}

// surfaceRenderer implements fyne.WidgetRenderer
type surfaceRenderer struct {
	surface *Surface
	raster  *canvas.Raster
	border  *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	surfaceSize := r.MinSize()
	r.raster.Resize(surfaceSize)
	r.raster.Move(fyne.NewPos(0, 0))
	r.border.Resize(surfaceSize)
	r.border.Move(fyne.NewPos(0, 0))
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.surface.width), float32(r.surface.height))
}

func (r *surfaceRenderer) Refresh() {
	r.raster.Refresh()
	canvas.Refresh(r.surface)
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *surfaceRenderer) Destroy() {}

package viewer

import (
	"image"
	"io"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/midline/internal/scene"
	"github.com/philipparndt/midline/pkg/geometry"
	"github.com/philipparndt/midline/pkg/landmark"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSurfaceTapReportsSurfaceCoordinates(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := NewSurface(640, 288, quietLogger())
	var gotX, gotY float64
	calls := 0
	s.SetOnTap(func(x, y float64) {
		gotX, gotY = x, y
		calls++
	})

	test.TapAt(s, fyne.NewPos(120, 80))

	if calls != 1 {
		t.Fatalf("Expected 1 tap callback, got %d", calls)
	}
	if gotX != 120 || gotY != 80 {
		t.Errorf("Expected tap at (120, 80), got (%v, %v)", gotX, gotY)
	}
}

func TestSurfacePassesTapsOutsideUnclamped(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := NewSurface(100, 50, quietLogger())
	var gotX, gotY float64
	calls := 0
	s.SetOnTap(func(x, y float64) {
		gotX, gotY = x, y
		calls++
	})

	s.Tapped(&fyne.PointEvent{Position: fyne.NewPos(150, -10)})

	if calls != 1 {
		t.Fatalf("Expected 1 tap callback, got %d", calls)
	}
	if gotX != 150 || gotY != -10 {
		t.Errorf("Expected tap at (150, -10), got (%v, %v)", gotX, gotY)
	}
}

func TestSurfaceDrawScalesToRaster(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := NewSurface(100, 50, quietLogger())
	s.Update(scene.Input{
		Width:  100,
		Height: 50,
		Points: map[landmark.ID]geometry.Vector2{
			landmark.UpperLeftCentral: {X: 20, Y: 20},
		},
	})

	img := s.draw(200, 100)
	if img.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Errorf("Expected 200x100 raster, got %v", img.Bounds())
	}
}

func TestSurfaceDrawZeroSize(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := NewSurface(100, 50, quietLogger())

	img := s.draw(0, 0)
	if img.Bounds().Empty() {
		t.Errorf("Expected a non-empty placeholder image")
	}
}

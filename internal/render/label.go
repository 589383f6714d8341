package render

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/midline/internal/scene"
)

var (
	regularOnce sync.Once
	regular     *opentype.Font
	regularErr  error
)

func regularFont() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// labelDrawer caches one face per font size
type labelDrawer struct {
	dst   *image.RGBA
	scale float64
	font  *opentype.Font
	faces map[float64]font.Face
}

func newLabelDrawer(dst *image.RGBA, scale float64) (*labelDrawer, error) {
	f, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	return &labelDrawer{
		dst:   dst,
		scale: scale,
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

func (l *labelDrawer) face(size float64) (font.Face, error) {
	if face, ok := l.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(l.font, &opentype.FaceOptions{
		Size:    size * l.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	l.faces[size] = face
	return face, nil
}

// draw renders the label centered on its anchor with the baseline at the anchor
func (l *labelDrawer) draw(label scene.Label) error {
	if label.Text == "" {
		return nil
	}
	face, err := l.face(label.Size)
	if err != nil {
		return err
	}

	d := &font.Drawer{
		Dst:  l.dst,
		Src:  image.NewUniform(label.Color),
		Face: face,
	}
	advance := d.MeasureString(label.Text)
	x := fixed.Int26_6(label.Anchor.X*l.scale*64) - advance/2
	y := fixed.Int26_6(label.Anchor.Y * l.scale * 64)
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(label.Text)
	return nil
}

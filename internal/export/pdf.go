package export

import (
	"fmt"
	"image"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font/standard"
	pdfimage "seehuhn.de/go/pdf/graphics/image"

	"github.com/philipparndt/midline/pkg/analysis"
)

// ReportTitle is the heading of every report
const ReportTitle = "Midline Analysis Report"

// Page layout in millimetres from the top left corner of an A4 page
const (
	marginMM    = 20.0
	titleTopMM  = 20.0
	firstLineMM = 30.0
	lineStepMM  = 10.0
	imageTopMM  = 60.0
	titleSize   = 16.0
	lineSize    = 12.0
)

// Composer writes the report document
type Composer interface {
	Compose(w io.Writer, m analysis.Measurement, snapshot image.Image) error
}

// PDFComposer renders the report as a single A4 portrait page
type PDFComposer struct{}

func mm(v float64) float64 {
	return v * 72 / 25.4
}

// Rect is a placement on the page in PDF points, origin bottom left
type Rect struct {
	Left, Bottom, Width, Height float64
}

// ImagePlacement fits an image of size w x h below the result lines. The
// image spans the page width minus the side margins; if that would reach
// past the bottom margin it is shrunk to the remaining height.
func ImagePlacement(pageWidth, pageHeight float64, w, h int) Rect {
	width := pageWidth - 2*mm(marginMM)
	if w <= 0 || h <= 0 {
		return Rect{Left: mm(marginMM), Bottom: pageHeight - mm(imageTopMM)}
	}
	height := width * float64(h) / float64(w)

	available := pageHeight - mm(imageTopMM) - mm(marginMM)
	if height > available {
		height = available
		width = height * float64(w) / float64(h)
	}

	return Rect{
		Left:   mm(marginMM),
		Bottom: pageHeight - mm(imageTopMM) - height,
		Width:  width,
		Height: height,
	}
}

// Compose implements Composer
func (PDFComposer) Compose(w io.Writer, m analysis.Measurement, snapshot image.Image) error {
	paper := document.A4
	pageWidth := paper.URx - paper.LLx
	pageHeight := paper.URy - paper.LLy

	page, err := document.WriteSinglePage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("failed to create pdf: %w", err)
	}

	helvetica := standard.Helvetica.New()

	text := func(s string, size, topMM float64) {
		page.TextBegin()
		page.TextSetFont(helvetica, size)
		page.TextFirstLine(mm(marginMM), pageHeight-mm(topMM))
		page.TextShow(s)
		page.TextEnd()
	}

	text(ReportTitle, titleSize, titleTopMM)
	for i, line := range m.ReportLines() {
		text(line, lineSize, firstLineMM+float64(i)*lineStepMM)
	}

	if snapshot != nil {
		b := snapshot.Bounds()
		r := ImagePlacement(pageWidth, pageHeight, b.Dx(), b.Dy())
		if r.Width > 0 && r.Height > 0 {
			page.PushGraphicsState()
			page.Transform(matrix.Translate(r.Left, r.Bottom))
			page.Transform(matrix.Scale(r.Width, r.Height))
			page.DrawXObject(&pdfimage.PNG{Data: snapshot})
			page.PopGraphicsState()
		}
	}

	if err := page.Close(); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

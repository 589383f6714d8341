package export

import (
	"bytes"
	"compress/zlib"
	"image"
	"image/color"
	"io"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/midline/pkg/analysis"
)

const (
	a4Width  = 595.276
	a4Height = 841.890
)

func TestImagePlacementFullWidth(t *testing.T) {
	r := ImagePlacement(a4Width, a4Height, 1280, 576)

	assert.InDelta(t, mm(20), r.Left, 1e-9)
	assert.InDelta(t, a4Width-2*mm(20), r.Width, 1e-9)
	assert.InDelta(t, r.Width*576/1280, r.Height, 1e-9)
	assert.InDelta(t, a4Height-mm(60), r.Bottom+r.Height, 1e-9)
}

func TestImagePlacementShrinksTallImage(t *testing.T) {
	r := ImagePlacement(a4Width, a4Height, 500, 2000)

	assert.InDelta(t, mm(20), r.Bottom, 1e-9)
	assert.InDelta(t, a4Height-mm(60)-mm(20), r.Height, 1e-9)
	assert.InDelta(t, r.Height/4, r.Width, 1e-9)
}

var (
	fontSizeRe  = regexp.MustCompile(`/[^\s/\[\]()<>]+\s+(\d+(?:\.\d+)?)\s+Tf`)
	scaleRe     = regexp.MustCompile(`(-?[\d.]+)\s+0\s+0\s+(-?[\d.]+)\s+0\s+0\s+cm`)
	imageTypeRe = regexp.MustCompile(`/Subtype\s*/Image`)
	drawRe      = regexp.MustCompile(`/[^\s/\[\]()<>]+\s+Do`)
)

// pdfStreams returns the data of every stream in a PDF file, inflated
// where it is Flate encoded
func pdfStreams(data []byte) [][]byte {
	var streams [][]byte
	pos := 0
	for {
		i := bytes.Index(data[pos:], []byte("stream"))
		if i < 0 {
			return streams
		}
		start := pos + i
		pos = start + len("stream")
		if start >= 3 && string(data[start-3:start]) == "end" {
			continue
		}
		if pos < len(data) && data[pos] == '\r' {
			pos++
		}
		if pos < len(data) && data[pos] == '\n' {
			pos++
		}
		end := bytes.Index(data[pos:], []byte("endstream"))
		if end < 0 {
			return streams
		}
		raw := data[pos : pos+end]
		pos += end + len("endstream")

		if r, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(r); err == nil {
				streams = append(streams, inflated)
				continue
			}
		}
		streams = append(streams, raw)
	}
}

// literalString decodes the PDF string starting at b[0] == '(' and returns
// it with the number of bytes consumed
func literalString(b []byte) ([]byte, int) {
	var out []byte
	depth := 0
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch c {
		case '\\':
			i++
			if i >= len(b) {
				return out, i
			}
			switch e := b[i]; {
			case e >= '0' && e <= '7':
				j := i
				for j < len(b) && j < i+3 && b[j] >= '0' && b[j] <= '7' {
					j++
				}
				v, _ := strconv.ParseUint(string(b[i:j]), 8, 8)
				out = append(out, byte(v))
				i = j - 1
			case e == 'n':
				out = append(out, '\n')
			case e == 'r':
				out = append(out, '\r')
			case e == 't':
				out = append(out, '\t')
			case e == '\r' || e == '\n':
			default:
				out = append(out, e)
			}
		case '(':
			depth++
			if depth > 1 {
				out = append(out, c)
			}
		case ')':
			depth--
			if depth == 0 {
				return out, i + 1
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out, len(b)
}

func isOperatorByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '*' || c == '\''
}

// shownText lists the strings painted by each Tj or TJ operator, with the
// pieces of a kerned TJ array joined
func shownText(content []byte) []string {
	var shown []string
	var pending []byte
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '(':
			s, n := literalString(content[i:])
			pending = append(pending, s...)
			i += n - 1
		case c == '/':
			for i+1 < len(content) && !bytes.ContainsAny(content[i+1:i+2], " \t\r\n/[]()<>{}%") {
				i++
			}
		case isOperatorByte(c):
			j := i
			for j < len(content) && isOperatorByte(content[j]) {
				j++
			}
			op := string(content[i:j])
			if op == "Tj" || op == "TJ" {
				shown = append(shown, string(pending))
			}
			pending = pending[:0]
			i = j - 1
		}
	}
	return shown
}

func TestPDFComposer(t *testing.T) {
	snapshot := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for x := 0; x < 64; x++ {
		snapshot.SetRGBA(x, 16, color.RGBA{0x3b, 0x82, 0xf6, 0xff})
	}

	var buf bytes.Buffer
	m := analysis.Measurement{UpperAngle: 0, LowerAngle: 5.71, MidlineDeviation: 5.71}
	require.NoError(t, PDFComposer{}.Compose(&buf, m, snapshot))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	require.True(t, bytes.Contains(data, []byte("%%EOF")))

	var text []string
	var sizes []float64
	var widths []float64
	var content []byte
	hasImage := imageTypeRe.Match(data)
	for _, stream := range pdfStreams(data) {
		hasImage = hasImage || imageTypeRe.Match(stream)
		if !bytes.Contains(stream, []byte("BT")) {
			continue
		}
		content = append(content, stream...)
		text = append(text, shownText(stream)...)
		for _, match := range fontSizeRe.FindAllSubmatch(stream, -1) {
			size, err := strconv.ParseFloat(string(match[1]), 64)
			require.NoError(t, err)
			sizes = append(sizes, size)
		}
		for _, match := range scaleRe.FindAllSubmatch(stream, -1) {
			width, err := strconv.ParseFloat(string(match[1]), 64)
			require.NoError(t, err)
			widths = append(widths, width)
		}
	}

	// WinAnsi encodes the degree sign as 0xb0
	assert.Equal(t, []string{
		ReportTitle,
		"Upper Angle: 0.0\xb0",
		"Lower Angle: 5.7\xb0",
		"Midline Deviation: 5.7\xb0",
	}, text)
	require.NotEmpty(t, sizes)
	assert.Equal(t, titleSize, sizes[0])
	assert.Contains(t, sizes, lineSize)

	assert.True(t, hasImage, "expected an image XObject")
	assert.True(t, drawRe.Match(content), "expected the image to be drawn")
	want := ImagePlacement(a4Width, a4Height, 64, 32)
	require.Len(t, widths, 1)
	assert.InDelta(t, want.Width, widths[0], 0.1)
}

func TestPDFComposerWithoutSnapshot(t *testing.T) {
	var buf bytes.Buffer
	m := analysis.Measurement{UpperAngle: 1, LowerAngle: 2, MidlineDeviation: 1}
	require.NoError(t, PDFComposer{}.Compose(&buf, m, nil))

	var text []string
	for _, stream := range pdfStreams(buf.Bytes()) {
		if bytes.Contains(stream, []byte("BT")) {
			text = append(text, shownText(stream)...)
		}
	}
	assert.Contains(t, text, ReportTitle)
	assert.Contains(t, text, "Midline Deviation: 1.0\xb0")
}

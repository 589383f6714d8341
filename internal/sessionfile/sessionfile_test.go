package sessionfile

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/midline/internal/session"
	"github.com/philipparndt/midline/pkg/landmark"
)

const complete = `{
  "image": "photo.png",
  "surface": {"width": 640, "height": 288},
  "markers": [
    {"id": "upper_left_central", "x": 0, "y": 0},
    {"id": "upper_left_lateral", "x": -20, "y": 5},
    {"id": "upper_right_central", "x": 100, "y": 0},
    {"id": "upper_right_lateral", "x": 120, "y": 5},
    {"id": "lower_left_central", "x": 0, "y": 50},
    {"id": "lower_left_lateral", "x": -20, "y": 55},
    {"id": "lower_right_central", "x": 100, "y": 60},
    {"id": "lower_right_lateral", "x": 120, "y": 65}
  ]
}`

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.png"), buf.Bytes(), 0644))

	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenComplete(t *testing.T) {
	path := writeFixture(t, complete)

	s, err := Open(path, SurfaceData{Width: 1, Height: 1}, quietLogger())
	require.NoError(t, err)

	assert.True(t, s.HasImage())
	assert.False(t, s.Armed())
	w, h := s.SurfaceSize()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 288.0, h)

	m, ok := s.Measurement()
	require.True(t, ok)
	assert.InDelta(t, 5.7106, m.MidlineDeviation, 1e-4)
}

func TestOpenPartialUsesFallbackSurface(t *testing.T) {
	path := writeFixture(t, `{"markers": [{"id": "upper_left_central", "x": 1, "y": 2}]}`)

	s, err := Open(path, SurfaceData{Width: 320, Height: 200}, quietLogger())
	require.NoError(t, err)

	w, h := s.SurfaceSize()
	assert.Equal(t, 320.0, w)
	assert.Equal(t, 200.0, h)
	assert.False(t, s.HasImage())
	assert.Equal(t, landmark.UpperLeftLateral, s.State().Target)
	_, ok := s.Measurement()
	assert.False(t, ok)
}

func TestReplayOutOfSequence(t *testing.T) {
	doc, err := Parse([]byte(`{"markers": [{"id": "upper_right_central", "x": 1, "y": 2}]}`))
	require.NoError(t, err)

	s := session.New(640, 288, quietLogger())
	err = doc.Replay(s)
	assert.ErrorIs(t, err, ErrOutOfSequence)
	assert.Empty(t, s.Markers())
	assert.False(t, s.Armed())
}

func TestReplayUnknownLandmark(t *testing.T) {
	doc, err := Parse([]byte(`{"markers": [{"id": "canine", "x": 1, "y": 2}]}`))
	require.NoError(t, err)

	err = doc.Replay(session.New(640, 288, quietLogger()))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "canine")
}

func TestCaptureRoundTrip(t *testing.T) {
	path := writeFixture(t, complete)
	s, err := Open(path, SurfaceData{}, quietLogger())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "copy.json")
	require.NoError(t, Write(out, Capture(s, "photo.png")))

	doc, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, Version, doc.Version)
	require.Len(t, doc.Markers, landmark.Count)
	assert.Equal(t, "lower_right_lateral", doc.Markers[7].ID)
	assert.Equal(t, 65.0, doc.Markers[7].Y)
}

func TestImagePath(t *testing.T) {
	doc := &Document{Image: "photo.jpg"}
	assert.Equal(t, filepath.Join("cases", "photo.jpg"), doc.ImagePath(filepath.Join("cases", "s.json")))

	abs := filepath.Join(string(filepath.Separator), "data", "photo.jpg")
	doc.Image = abs
	assert.Equal(t, abs, doc.ImagePath("s.json"))

	doc.Image = ""
	assert.Equal(t, "", doc.ImagePath("s.json"))
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"markers": [`))
	assert.Error(t, err)
}

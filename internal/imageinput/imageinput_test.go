package imageinput

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encoded(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	data := encoded(t, func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestDecodeBMP(t *testing.T) {
	data := encoded(t, func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) })

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "image/bmp", img.MIME)
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, err := Decode([]byte("%PDF-1.7\n"))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = Decode([]byte("just some text"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	data := encoded(t, func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })
	require.NoError(t, os.WriteFile(path, data, 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

// Package imageinput decodes user supplied photographs.
package imageinput

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned for content that is not an image
var ErrNotImage = errors.New("file is not an image")

// Image is a decoded photograph with its detected type
type Image struct {
	image.Image
	MIME string
}

// Detect returns the MIME type of data and whether it is an image
func Detect(data []byte) (string, bool) {
	mtype := mimetype.Detect(data)
	return mtype.String(), strings.HasPrefix(mtype.String(), "image/")
}

// Decode sniffs and decodes an image
func Decode(data []byte) (*Image, error) {
	mime, ok := Detect(data)
	if !ok {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", mime, err)
	}
	return &Image{Image: img, MIME: mime}, nil
}

// Load reads and decodes an image file
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

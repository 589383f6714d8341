// Package sessionfile stores marker placements as JSON so reports can be
// regenerated from the command line.
package sessionfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/midline/internal/imageinput"
	"github.com/philipparndt/midline/internal/session"
	"github.com/philipparndt/midline/pkg/landmark"
)

// Version of the document format
const Version = "1.0"

// ErrOutOfSequence is returned when markers are not in placement order
var ErrOutOfSequence = errors.New("marker out of sequence")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the JSON structure of a session file
type Document struct {
	Version string       `json:"version,omitempty"`
	Image   string       `json:"image,omitempty"`
	Surface SurfaceData  `json:"surface"`
	Markers []MarkerData `json:"markers"`
}

// SurfaceData is the surface size the markers were placed on
type SurfaceData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MarkerData is one placed landmark
type MarkerData struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Parse decodes a session document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &doc, nil
}

// Read loads a session document from disk
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Write saves a session document with indentation
func Write(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// ImagePath resolves the image reference relative to the session file
func (d *Document) ImagePath(sessionPath string) string {
	if d.Image == "" || filepath.IsAbs(d.Image) {
		return d.Image
	}
	return filepath.Join(filepath.Dir(sessionPath), d.Image)
}

// Replay places the markers on s in document order. Each marker must be the
// current target of the session. The armed flag is restored afterwards.
func (d *Document) Replay(s *session.Session) error {
	wasArmed := s.Armed()
	s.Arm()
	defer func() {
		if !wasArmed {
			s.Disarm()
		}
	}()

	for i, m := range d.Markers {
		id, err := landmark.Parse(m.ID)
		if err != nil {
			return fmt.Errorf("marker %d: %w", i, err)
		}
		state := s.State()
		if state.Done() || state.Target != id {
			return fmt.Errorf("%w: marker %d is %s", ErrOutOfSequence, i, id)
		}
		if _, err := s.Place(m.X, m.Y); err != nil {
			return fmt.Errorf("marker %d: %w", i, err)
		}
	}
	return nil
}

// Capture records the markers of s in placement order
func Capture(s *session.Session, image string) *Document {
	width, height := s.SurfaceSize()
	doc := &Document{
		Version: Version,
		Image:   image,
		Surface: SurfaceData{Width: width, Height: height},
		Markers: make([]MarkerData, 0, landmark.Count),
	}
	markers := s.Markers()
	for _, id := range landmark.Sequence() {
		if m, ok := markers[id]; ok {
			doc.Markers = append(doc.Markers, MarkerData{ID: id.Key(), X: m.X, Y: m.Y})
		}
	}
	return doc
}

// Open reads a session file and rebuilds the session it describes. A
// surface missing from the file falls back to the given size.
func Open(path string, fallback SurfaceData, logger *logrus.Logger) (*session.Session, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}

	surface := doc.Surface
	if surface.Width <= 0 || surface.Height <= 0 {
		surface = fallback
	}
	s := session.New(surface.Width, surface.Height, logger)

	if imagePath := doc.ImagePath(path); imagePath != "" {
		img, err := imageinput.Load(imagePath)
		if err != nil {
			return nil, err
		}
		s.SetImage(img.Image)
	}

	if err := doc.Replay(s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

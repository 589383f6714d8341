// Package session holds the state of one analysis: the loaded image, the
// placement machine and the last computed measurement.
package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/philipparndt/midline/internal/placement"
	"github.com/philipparndt/midline/internal/scene"
	"github.com/philipparndt/midline/pkg/analysis"
	"github.com/philipparndt/midline/pkg/landmark"
)

// ErrNoImage is returned when an operation needs an image and none is loaded
var ErrNoImage = errors.New("no image loaded")

// Session is owned by a single event context and is not safe for
// concurrent use. Use Loop to share it between goroutines.
type Session struct {
	width, height float64
	img           image.Image
	machine       *placement.Machine
	measurement   *analysis.Measurement
	log           *logrus.Entry
}

// New creates an empty session for a surface of the given size
func New(width, height float64, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Session{
		width:   width,
		height:  height,
		machine: placement.NewMachine(),
		log:     logger.WithField("component", "session"),
	}
}

// SurfaceSize returns the size of the drawing surface in pixels
func (s *Session) SurfaceSize() (float64, float64) {
	return s.width, s.height
}

// SetImage replaces the displayed image. Markers are kept.
func (s *Session) SetImage(img image.Image) {
	s.img = img
	if img != nil {
		b := img.Bounds()
		s.log.WithFields(logrus.Fields{"width": b.Dx(), "height": b.Dy()}).Info("image loaded")
	}
}

// Image returns the loaded image
func (s *Session) Image() (image.Image, error) {
	if s.img == nil {
		return nil, ErrNoImage
	}
	return s.img, nil
}

// HasImage reports whether an image is loaded
func (s *Session) HasImage() bool {
	return s.img != nil
}

// Arm starts placement
func (s *Session) Arm() {
	s.machine.Arm()
	s.log.Debug("placement armed")
}

// Disarm stops placement, keeping progress
func (s *Session) Disarm() {
	s.machine.Disarm()
	s.log.Debug("placement disarmed")
}

// Toggle flips the armed flag
func (s *Session) Toggle() bool {
	armed := s.machine.Toggle()
	s.log.WithField("armed", armed).Debug("placement toggled")
	return armed
}

// Armed reports whether placement is active
func (s *Session) Armed() bool {
	return s.machine.Armed()
}

// Place records a surface point for the current target. When the last
// landmark is placed the measurement is computed before Place returns.
func (s *Session) Place(x, y float64) (placement.State, error) {
	target := s.machine.State().Target
	state, err := s.machine.Place(x, y)
	if err != nil {
		return state, err
	}

	s.log.WithFields(logrus.Fields{
		"landmark": target.Key(),
		"x":        x,
		"y":        y,
	}).Debug("marker placed")

	if state.Done() {
		m, err := analysis.Compute(s.machine.Points())
		if err != nil {
			return state, fmt.Errorf("failed to compute measurement: %w", err)
		}
		s.measurement = &m
		s.log.WithFields(logrus.Fields{
			"upper":     analysis.FormatDegrees(m.UpperAngle),
			"lower":     analysis.FormatDegrees(m.LowerAngle),
			"deviation": analysis.FormatDegrees(m.MidlineDeviation),
		}).Info("measurement computed")
	}
	return state, nil
}

// Reset clears markers, measurement and image. The armed flag is kept.
func (s *Session) Reset() {
	s.machine.Reset()
	s.measurement = nil
	s.img = nil
	s.log.Debug("session reset")
}

// Measurement returns the current measurement, if any
func (s *Session) Measurement() (analysis.Measurement, bool) {
	if s.measurement == nil {
		return analysis.Measurement{}, false
	}
	return *s.measurement, true
}

// State returns the placement state
func (s *Session) State() placement.State {
	return s.machine.State()
}

// Markers returns a copy of the placed markers
func (s *Session) Markers() map[landmark.ID]placement.Marker {
	return s.machine.Markers()
}

// Progress returns the placement progress list
func (s *Session) Progress() []placement.Step {
	return s.machine.Progress()
}

// Prompt returns the instruction for the current target
func (s *Session) Prompt() string {
	return s.machine.Prompt()
}

// Snapshot captures everything needed to draw the surface. The returned
// value does not share mutable state with the session.
func (s *Session) Snapshot() scene.Input {
	in := scene.Input{
		Width:  s.width,
		Height: s.height,
		Image:  s.img,
		Points: s.machine.Points(),
	}
	if s.measurement != nil {
		m := *s.measurement
		in.Measurement = &m
	}
	return in
}

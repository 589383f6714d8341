// Package placement implements the ordered landmark placement state machine.
//
// The machine moves through the eight landmarks in the fixed sequence of
// package landmark. Only the current target can be placed, and placement is
// accepted only while the machine is armed.
package placement

import (
	"errors"
	"fmt"

	"github.com/philipparndt/midline/pkg/geometry"
	"github.com/philipparndt/midline/pkg/landmark"
)

var (
	// ErrDisarmed is returned when a point is offered while placement is stopped
	ErrDisarmed = errors.New("placement is not active")
	// ErrComplete is returned when all landmarks are already placed
	ErrComplete = errors.New("all landmarks are placed")
)

// Status is the state of the machine
type Status int

const (
	AwaitingInput Status = iota
	Complete
)

func (s Status) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is a snapshot of the machine. Target is only meaningful while
// Status is AwaitingInput.
type State struct {
	Status Status
	Target landmark.ID
}

// Done reports whether every landmark has been placed
func (s State) Done() bool {
	return s.Status == Complete
}

// Marker is a captured point in surface-local pixels
type Marker struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Placed bool    `json:"placed"`
}

// Point returns the marker position as a vector
func (m Marker) Point() geometry.Vector2 {
	return geometry.NewVector2(m.X, m.Y)
}

// Machine is the placement state machine. It is not safe for concurrent use;
// callers own it from a single event context.
type Machine struct {
	armed   bool
	state   State
	markers map[landmark.ID]Marker
}

// NewMachine creates a disarmed machine waiting for the first landmark
func NewMachine() *Machine {
	m := &Machine{}
	m.Reset()
	return m
}

// next is the transition taken after the current target has been placed.
// It is total: Complete maps to itself.
func next(s State) State {
	if s.Status == Complete {
		return s
	}
	id, ok := s.Target.Next()
	if !ok {
		return State{Status: Complete}
	}
	return State{Status: AwaitingInput, Target: id}
}

// Arm starts accepting points
func (m *Machine) Arm() {
	m.armed = true
}

// Disarm stops accepting points; progress is kept
func (m *Machine) Disarm() {
	m.armed = false
}

// Toggle flips the armed flag and returns the new value
func (m *Machine) Toggle() bool {
	m.armed = !m.armed
	return m.armed
}

// Armed reports whether points are accepted
func (m *Machine) Armed() bool {
	return m.armed
}

// Place records a point for the current target and advances the sequence.
// Coordinates are stored as given, without clamping.
func (m *Machine) Place(x, y float64) (State, error) {
	if !m.armed {
		return m.state, ErrDisarmed
	}
	if m.state.Status == Complete {
		return m.state, ErrComplete
	}

	m.markers[m.state.Target] = Marker{X: x, Y: y, Placed: true}
	m.state = next(m.state)
	return m.state, nil
}

// Reset drops all markers and waits for the first landmark again.
// The armed flag is left unchanged.
func (m *Machine) Reset() {
	m.state = State{Status: AwaitingInput, Target: landmark.First()}
	m.markers = make(map[landmark.ID]Marker, landmark.Count)
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Marker returns the marker for id and whether it has been placed
func (m *Machine) Marker(id landmark.ID) (Marker, bool) {
	marker, ok := m.markers[id]
	return marker, ok
}

// Placed reports whether id has been placed
func (m *Machine) Placed(id landmark.ID) bool {
	_, ok := m.markers[id]
	return ok
}

// Markers returns a copy of all placed markers
func (m *Machine) Markers() map[landmark.ID]Marker {
	out := make(map[landmark.ID]Marker, len(m.markers))
	for id, marker := range m.markers {
		out[id] = marker
	}
	return out
}

// Points returns the placed markers as vectors
func (m *Machine) Points() map[landmark.ID]geometry.Vector2 {
	out := make(map[landmark.ID]geometry.Vector2, len(m.markers))
	for id, marker := range m.markers {
		out[id] = marker.Point()
	}
	return out
}

// Prompt returns the instruction shown to the user for the current state
func (m *Machine) Prompt() string {
	if m.state.Status == Complete {
		return "All markers placed"
	}
	return "Tap on: " + m.state.Target.Name()
}

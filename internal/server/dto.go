package server

import (
	"github.com/philipparndt/midline/internal/placement"
	"github.com/philipparndt/midline/internal/session"
	"github.com/philipparndt/midline/pkg/analysis"
	"github.com/philipparndt/midline/pkg/landmark"
)

// MarkerRequest is the body of POST /markers
type MarkerRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// StepResponse is one entry of the progress list
type StepResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// MarkerResponse is a placed marker
type MarkerResponse struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Placed bool    `json:"placed"`
}

// MeasurementResponse carries raw and formatted values
type MeasurementResponse struct {
	UpperAngle       float64  `json:"upperAngle"`
	LowerAngle       float64  `json:"lowerAngle"`
	MidlineDeviation float64  `json:"midlineDeviation"`
	Lines            []string `json:"lines"`
	Significant      bool     `json:"significant"`
	WrapsAround      bool     `json:"wrapsAround"`
}

// StateResponse is the full session state
type StateResponse struct {
	Armed       bool                 `json:"armed"`
	Status      string               `json:"status"`
	Target      string               `json:"target,omitempty"`
	Prompt      string               `json:"prompt"`
	HasImage    bool                 `json:"hasImage"`
	Width       float64              `json:"width"`
	Height      float64              `json:"height"`
	Progress    []StepResponse       `json:"progress"`
	Markers     []MarkerResponse     `json:"markers"`
	Measurement *MeasurementResponse `json:"measurement,omitempty"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func newMeasurementResponse(m analysis.Measurement) *MeasurementResponse {
	r := m.Rounded()
	return &MeasurementResponse{
		UpperAngle:       r.UpperAngle,
		LowerAngle:       r.LowerAngle,
		MidlineDeviation: r.MidlineDeviation,
		Lines:            m.ReportLines(),
		Significant:      m.Significant(),
		WrapsAround:      m.WrapsAround(),
	}
}

func newStateResponse(s *session.Session) StateResponse {
	state := s.State()
	width, height := s.SurfaceSize()
	resp := StateResponse{
		Armed:    s.Armed(),
		Status:   state.Status.String(),
		Prompt:   s.Prompt(),
		HasImage: s.HasImage(),
		Width:    width,
		Height:   height,
		Progress: make([]StepResponse, 0, landmark.Count),
		Markers:  make([]MarkerResponse, 0, landmark.Count),
	}
	if state.Status == placement.AwaitingInput {
		resp.Target = state.Target.Key()
	}

	for _, step := range s.Progress() {
		resp.Progress = append(resp.Progress, StepResponse{
			ID:     step.ID.Key(),
			Name:   step.ID.Name(),
			Status: string(step.Status),
		})
	}

	markers := s.Markers()
	for _, id := range landmark.Sequence() {
		m, ok := markers[id]
		if !ok {
			continue
		}
		resp.Markers = append(resp.Markers, MarkerResponse{
			ID:     id.Key(),
			Label:  id.Abbrev(),
			Color:  id.Color(),
			X:      m.X,
			Y:      m.Y,
			Placed: m.Placed,
		})
	}

	if m, ok := s.Measurement(); ok {
		resp.Measurement = newMeasurementResponse(m)
	}
	return resp
}

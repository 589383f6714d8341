package placement

import "github.com/philipparndt/midline/pkg/landmark"

// StepStatus describes one landmark in the progress list
type StepStatus string

const (
	StepPlaced  StepStatus = "placed"
	StepCurrent StepStatus = "current"
	StepPending StepStatus = "pending"
)

// Step is one entry of the progress list
type Step struct {
	ID     landmark.ID
	Status StepStatus
}

// Progress lists every landmark in sequence order with its status
func (m *Machine) Progress() []Step {
	steps := make([]Step, 0, landmark.Count)
	for _, id := range landmark.Sequence() {
		status := StepPending
		switch {
		case m.Placed(id):
			status = StepPlaced
		case m.state.Status == AwaitingInput && m.state.Target == id:
			status = StepCurrent
		}
		steps = append(steps, Step{ID: id, Status: status})
	}
	return steps
}


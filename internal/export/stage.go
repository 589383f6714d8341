package export

import "fmt"

// Stage is the position of a pipeline in the export process
type Stage int

const (
	Idle Stage = iota
	Snapshotting
	Composing
	Done
	Failed
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Snapshotting:
		return "snapshotting"
	case Composing:
		return "composing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Running reports whether an export is between start and finish
func (s Stage) Running() bool {
	return s == Snapshotting || s == Composing
}

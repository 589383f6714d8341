package session

import (
	"context"
	"errors"
)

// ErrLoopStopped is returned when an event is submitted after the loop ended
var ErrLoopStopped = errors.New("session loop stopped")

type event struct {
	apply func(*Session) error
	done  chan error
}

// Loop serializes access to a Session. All events run one at a time on the
// goroutine that called Run.
type Loop struct {
	session *Session
	events  chan event
	stopped chan struct{}
}

// NewLoop creates a loop owning s
func NewLoop(s *Session) *Loop {
	return &Loop{
		session: s,
		events:  make(chan event),
		stopped: make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-l.events:
			ev.done <- ev.apply(l.session)
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish
func (l *Loop) Do(ctx context.Context, fn func(*Session) error) error {
	ev := event{apply: fn, done: make(chan error, 1)}
	select {
	case l.events <- ev:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-ev.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

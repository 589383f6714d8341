// Package export turns a captured session into a one page PDF report.
//
// The pipeline works on a detached scene.Input captured by the caller, so a
// running export never observes later edits to the session.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/midline/internal/render"
	"github.com/philipparndt/midline/internal/scene"
)

// DefaultFileName is the name reports are saved under
const DefaultFileName = "midline_report.pdf"

// FailureMessage is shown to users when an export fails
const FailureMessage = "Failed to export PDF. Ensure all markers are placed and try again."

var (
	// ErrNothingToExport is returned when there is no measurement or surface
	ErrNothingToExport = errors.New("no measurements to export or surface not found")
	// ErrExportFailed wraps every failure after the export has started
	ErrExportFailed = errors.New("export failed")
	// ErrExportInProgress is returned when an export is already running
	ErrExportInProgress = errors.New("export already in progress")
)

// Request is the input of one export
type Request struct {
	Input scene.Input
}

// Result describes a finished export
type Result struct {
	ID       uuid.UUID
	FileName string
	Location string
	Size     int
}

// Pipeline renders, composes and saves reports. It runs at most one export
// at a time.
type Pipeline struct {
	composer    Composer
	sink        Sink
	style       scene.Style
	scale       float64
	settleDelay time.Duration
	fileName    string
	log         *logrus.Logger

	running atomic.Bool
	mu      sync.Mutex
	stage   Stage
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithScale sets the snapshot supersampling factor
func WithScale(scale float64) Option {
	return func(p *Pipeline) {
		if scale > 0 {
			p.scale = scale
		}
	}
}

// WithSettleDelay waits before taking the snapshot
func WithSettleDelay(d time.Duration) Option {
	return func(p *Pipeline) {
		p.settleDelay = d
	}
}

// WithFileName overrides the report file name
func WithFileName(name string) Option {
	return func(p *Pipeline) {
		if name != "" {
			p.fileName = name
		}
	}
}

// WithStyle overrides the overlay colors
func WithStyle(style scene.Style) Option {
	return func(p *Pipeline) {
		p.style = style
	}
}

// WithComposer replaces the PDF composer
func WithComposer(c Composer) Option {
	return func(p *Pipeline) {
		p.composer = c
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.log = logger
		}
	}
}

// NewPipeline creates a pipeline writing to sink
func NewPipeline(sink Sink, opts ...Option) *Pipeline {
	p := &Pipeline{
		composer: PDFComposer{},
		sink:     sink,
		style:    scene.DefaultStyle(),
		scale:    render.DefaultScale,
		fileName: DefaultFileName,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stage returns the stage of the running export, or of the last finished
// one until a rejected request returns the pipeline to Idle
func (p *Pipeline) Stage() Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage
}

func (p *Pipeline) setStage(s Stage, entry *logrus.Entry) {
	p.mu.Lock()
	p.stage = s
	p.mu.Unlock()
	entry.WithField("stage", s.String()).Debug("export stage")
}

// Export produces the report for req and hands it to the pipeline sink.
// Without a measurement or surface it returns ErrNothingToExport without
// starting an export; an idle pipeline then reports Idle.
func (p *Pipeline) Export(ctx context.Context, req Request) (Result, error) {
	return p.ExportTo(ctx, req, p.sink)
}

// ExportTo is Export with a sink for this call only
func (p *Pipeline) ExportTo(ctx context.Context, req Request, sink Sink) (Result, error) {
	in := req.Input
	if in.Measurement == nil || in.Width <= 0 || in.Height <= 0 {
		if p.running.CompareAndSwap(false, true) {
			p.mu.Lock()
			p.stage = Idle
			p.mu.Unlock()
			p.running.Store(false)
		}
		return Result{}, ErrNothingToExport
	}
	if !p.running.CompareAndSwap(false, true) {
		return Result{}, ErrExportInProgress
	}
	defer p.running.Store(false)

	id := uuid.New()
	entry := p.log.WithField("export_id", id.String())

	fail := func(err error) (Result, error) {
		p.setStage(Failed, entry)
		entry.WithError(err).Error("export failed")
		return Result{}, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	if sink == nil {
		return fail(errors.New("no sink configured"))
	}

	p.setStage(Snapshotting, entry)
	if err := p.settle(ctx); err != nil {
		return fail(err)
	}
	snapshot, err := p.Snapshot(in)
	if err != nil {
		return fail(fmt.Errorf("failed to render snapshot: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	p.setStage(Composing, entry)
	var buf bytes.Buffer
	if err := p.composer.Compose(&buf, *in.Measurement, snapshot); err != nil {
		return fail(fmt.Errorf("failed to compose report: %w", err))
	}

	location, err := sink.Save(ctx, p.fileName, buf.Bytes())
	if err != nil {
		return fail(fmt.Errorf("failed to save report: %w", err))
	}

	p.setStage(Done, entry)
	entry.WithFields(logrus.Fields{
		"file": location,
		"size": buf.Len(),
	}).Info("report exported")

	return Result{
		ID:       id,
		FileName: p.fileName,
		Location: location,
		Size:     buf.Len(),
	}, nil
}

// Notice returns the text shown to a user for an export error. Failures
// of a started export get FailureMessage; rejected requests keep their own
// message.
func Notice(err error) string {
	if errors.Is(err, ErrExportFailed) {
		return FailureMessage
	}
	return err.Error()
}

// Snapshot rasterizes in with the pipeline style and scale
func (p *Pipeline) Snapshot(in scene.Input) (*image.RGBA, error) {
	return render.Render(scene.Build(in, p.style), p.scale)
}

func (p *Pipeline) settle(ctx context.Context) error {
	if p.settleDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.settleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

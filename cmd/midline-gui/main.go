package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/midline/internal/config"
	"github.com/philipparndt/midline/internal/export"
	"github.com/philipparndt/midline/internal/imageinput"
	"github.com/philipparndt/midline/internal/logging"
	"github.com/philipparndt/midline/internal/placement"
	"github.com/philipparndt/midline/internal/scene"
	"github.com/philipparndt/midline/internal/session"
	"github.com/philipparndt/midline/pkg/analysis"
	"github.com/philipparndt/midline/pkg/viewer"
)

type App struct {
	window   fyne.Window
	cfg      *config.Config
	log      *logrus.Logger
	session  *session.Session
	pipeline *export.Pipeline
	surface  *viewer.Surface

	toggleButton *widget.Button
	exportButton *widget.Button
	promptLabel  *widget.Label
	progressBox  *fyne.Container
	results      *MeasurementCard
}

type MeasurementCard struct {
	upperLabel     *widget.Label
	lowerLabel     *widget.Label
	deviationLabel *widget.Label
	warningLabel   *widget.Label
}

func main() {
	cfg, logger, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("Midline - Dental Midline Analysis")

	appInstance := &App{
		window:  w,
		cfg:     cfg,
		log:     logger,
		session: session.New(cfg.Surface.Width, cfg.Surface.Height, logger),
		pipeline: export.NewPipeline(nil,
			export.WithLogger(logger),
			export.WithScale(cfg.Export.Scale),
			export.WithSettleDelay(cfg.Export.SettleDelay),
			export.WithFileName(cfg.Export.FileName),
		),
	}
	appInstance.setupMainUI()

	// Check if an image was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadImage(os.Args[1])
	}

	w.Resize(fyne.NewSize(1100, 700))
	w.ShowAndRun()
}

func setup() (*config.Config, *logrus.Logger, error) {
	if err := config.Load("."); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Get()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		LogsDir: cfg.LogsDir,
		ToFile:  cfg.LogToFile,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func (a *App) setupMainUI() {
	a.surface = viewer.NewSurface(a.cfg.Surface.Width, a.cfg.Surface.Height, a.log)
	a.surface.SetOnTap(a.place)

	a.toggleButton = widget.NewButton("Start", func() {
		a.session.Toggle()
		a.refresh()
	})

	resetButton := widget.NewButton("Reset", func() {
		a.session.Reset()
		a.refresh()
	})

	openButton := widget.NewButton("Open Image", func() {
		a.showImageDialog()
	})

	a.exportButton = widget.NewButton("Export PDF", func() {
		a.showExportDialog()
	})

	a.promptLabel = widget.NewLabel("")
	a.promptLabel.TextStyle = fyne.TextStyle{Bold: true}

	a.progressBox = container.NewVBox()

	a.results = &MeasurementCard{
		upperLabel:     widget.NewLabel(""),
		lowerLabel:     widget.NewLabel(""),
		deviationLabel: widget.NewLabel(""),
		warningLabel:   widget.NewLabel(""),
	}
	a.results.deviationLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.results.warningLabel.Wrapping = fyne.TextWrapWord

	controls := container.NewHBox(openButton, a.toggleButton, resetButton, a.exportButton)

	infoPanel := container.NewVBox(
		widget.NewLabel("Landmarks:"),
		widget.NewSeparator(),
		a.progressBox,
		widget.NewSeparator(),
		widget.NewLabel("Measurements:"),
		widget.NewSeparator(),
		a.results.upperLabel,
		a.results.lowerLabel,
		a.results.deviationLabel,
		a.results.warningLabel,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	header := container.NewVBox(controls, a.promptLabel)

	content := container.NewBorder(
		header,                         // top
		nil,                            // bottom
		nil,                            // left
		infoScroll,                     // right
		container.NewCenter(a.surface), // center
	)

	a.window.SetContent(content)
	a.refresh()
}

func (a *App) place(x, y float64) {
	if _, err := a.session.Place(x, y); err != nil {
		if errors.Is(err, placement.ErrDisarmed) || errors.Is(err, placement.ErrComplete) {
			return
		}
		dialog.ShowError(err, a.window)
		return
	}
	a.refresh()
}

func (a *App) showImageDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read image: %w", err), a.window)
			return
		}
		img, err := imageinput.Decode(data)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.session.SetImage(img)
		a.refresh()
	}, a.window)
}

func (a *App) loadImage(path string) {
	img, err := imageinput.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.session.SetImage(img)
	a.refresh()
}

func (a *App) showExportDialog() {
	req := export.Request{Input: a.session.Snapshot()}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}

		a.exportButton.Disable()
		go func() {
			_, err := a.pipeline.ExportTo(context.Background(), req, export.WriterSink{W: writer})
			closeErr := writer.Close()
			if err == nil && closeErr != nil {
				err = fmt.Errorf("%w: %w", export.ErrExportFailed, closeErr)
			}

			fyne.Do(func() {
				if err != nil {
					a.log.WithError(err).Warn("export failed")
					dialog.ShowError(errors.New(export.Notice(err)), a.window)
				} else {
					dialog.ShowInformation("Export", "Report saved to "+writer.URI().Name(), a.window)
				}
				a.refresh()
			})
		}()
	}, a.window)
	save.SetFileName(a.cfg.Export.FileName)
	save.Show()
}

// refresh brings every widget in line with the session
func (a *App) refresh() {
	a.surface.Update(a.session.Snapshot())

	if a.session.Armed() {
		a.toggleButton.SetText("Stop")
		a.toggleButton.Importance = widget.DangerImportance
	} else {
		a.toggleButton.SetText("Start")
		a.toggleButton.Importance = widget.SuccessImportance
	}
	a.toggleButton.Refresh()

	if a.session.Armed() {
		a.promptLabel.SetText(a.session.Prompt())
	} else {
		a.promptLabel.SetText("Press Start to place markers")
	}

	a.updateProgress()
	a.updateMeasurements()
}

func (a *App) updateProgress() {
	a.progressBox.RemoveAll()
	for _, step := range a.session.Progress() {
		dot := canvas.NewCircle(scene.ResolveColor(step.ID.Color(), scene.FallbackForeground))
		dot.Resize(fyne.NewSize(12, 12))
		if step.Status == placement.StepPending {
			dot.FillColor = scene.ResolveColor("#d1d5db", scene.FallbackBackground)
		}

		label := widget.NewLabel(step.ID.Name())
		switch step.Status {
		case placement.StepCurrent:
			label.TextStyle = fyne.TextStyle{Bold: true}
		case placement.StepPlaced:
			label.Importance = widget.LowImportance
		}

		a.progressBox.Add(container.NewHBox(container.NewGridWrap(fyne.NewSize(12, 12), dot), label))
	}
	a.progressBox.Refresh()
}

func (a *App) updateMeasurements() {
	card := a.results
	m, ok := a.session.Measurement()
	if !ok {
		card.upperLabel.SetText("Upper Angle: -")
		card.lowerLabel.SetText("Lower Angle: -")
		card.deviationLabel.SetText("Midline Deviation: -")
		card.deviationLabel.Importance = widget.MediumImportance
		card.deviationLabel.Refresh()
		card.warningLabel.SetText("")
		a.exportButton.Disable()
		return
	}

	lines := m.ReportLines()
	card.upperLabel.SetText(lines[0])
	card.lowerLabel.SetText(lines[1])
	card.deviationLabel.SetText(lines[2])

	if m.Significant() {
		card.deviationLabel.Importance = widget.DangerImportance
		card.warningLabel.SetText(fmt.Sprintf("Deviation exceeds %s", analysis.FormatDegrees(analysis.SignificantDeviation)))
	} else {
		card.deviationLabel.Importance = widget.SuccessImportance
		card.warningLabel.SetText("")
	}
	card.deviationLabel.Refresh()

	if a.pipeline.Stage().Running() {
		a.exportButton.Disable()
	} else {
		a.exportButton.Enable()
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/philipparndt/midline/internal/export"
	"github.com/philipparndt/midline/pkg/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <session.json>",
	Short: "Re-export the report whenever the session file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default from config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "wait this long after the last change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := newPipeline(reportSink())
	regenerate := func() {
		res, err := exportSession(ctx, pipeline, path)
		switch {
		case errors.Is(err, export.ErrNothingToExport):
			logger.WithField("file", path).Info("waiting for all markers")
		case errors.Is(err, export.ErrExportInProgress):
			logger.Debug("export already running")
		case err != nil:
			logger.WithError(err).Error("report failed")
		default:
			logger.WithFields(logrus.Fields{"file": res.Location}).Info("report updated")
		}
	}

	fw, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		return err
	}
	if err := fw.Watch([]string{path}, func(string) { regenerate() }); err != nil {
		fw.Close()
		return err
	}

	regenerate()
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, press Ctrl+C to stop\n", path)
	return fw.Run(ctx)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/philipparndt/midline/internal/export"
	"github.com/philipparndt/midline/internal/sessionfile"
)

var outputDir string

var reportCmd = &cobra.Command{
	Use:   "report <session.json>",
	Short: "Export the PDF report of a session file",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default from config)")
}

func reportSink() export.FileSink {
	dir := cfg.Export.OutputDir
	if outputDir != "" {
		dir = outputDir
	}
	return export.FileSink{Dir: dir}
}

// exportSession rebuilds the session in path and exports its report
func exportSession(ctx context.Context, pipeline *export.Pipeline, path string) (export.Result, error) {
	s, err := sessionfile.Open(path, sessionfile.SurfaceData{
		Width:  cfg.Surface.Width,
		Height: cfg.Surface.Height,
	}, logger)
	if err != nil {
		return export.Result{}, err
	}
	return pipeline.Export(ctx, export.Request{Input: s.Snapshot()})
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := exportSession(ctx, newPipeline(reportSink()), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", res.Location)
	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/midline/internal/export"
	"github.com/philipparndt/midline/internal/server"
	"github.com/philipparndt/midline/internal/session"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an analysis session over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := session.NewLoop(session.New(cfg.Surface.Width, cfg.Surface.Height, logger))
	go loop.Run(ctx)

	srv := server.New(loop, newPipeline(export.FileSink{Dir: cfg.Export.OutputDir}), logger, server.Options{
		BodyLimit: cfg.Server.BodyLimit,
	})

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			logger.WithError(err).Warn("shutdown failed")
		}
	}()

	return srv.Listen(addr)
}

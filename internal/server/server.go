// Package server exposes a session over HTTP.
package server

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/midline/internal/export"
	"github.com/philipparndt/midline/internal/session"
)

// DefaultBodyLimit allows photographs up to 50 MiB
const DefaultBodyLimit = 50 * 1024 * 1024

// Options configures the server
type Options struct {
	BodyLimit int
}

// Server serves one session
type Server struct {
	app       *fiber.App
	loop      *session.Loop
	pipeline  *export.Pipeline
	validator *validator.Validate
	log       *logrus.Logger
}

// New creates the fiber app. The caller runs loop.
func New(loop *session.Loop, pipeline *export.Pipeline, logger *logrus.Logger, opts Options) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:               "midline",
		BodyLimit:             opts.BodyLimit,
		StrictRouting:         true,
		CaseSensitive:         true,
		DisableStartupMessage: true,
		JSONEncoder:           jsoniter.Marshal,
		JSONDecoder:           jsoniter.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	s := &Server{
		app:       app,
		loop:      loop,
		pipeline:  pipeline,
		validator: validator.New(),
		log:       logger,
	}

	app.Use(requestID())
	app.Use(requestLogger(logger))
	s.Start(app.Group("/api/session"))
	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown
func (s *Server) Listen(addr string) error {
	s.log.WithField("addr", addr).Info("listening")
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

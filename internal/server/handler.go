package server

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/philipparndt/midline/internal/export"
	"github.com/philipparndt/midline/internal/imageinput"
	"github.com/philipparndt/midline/internal/render"
	"github.com/philipparndt/midline/internal/scene"
	"github.com/philipparndt/midline/internal/session"
)

// Start registers the session routes
func (s *Server) Start(router fiber.Router) {
	router.Get("/", s.getState)
	router.Post("/image", s.postImage)
	router.Post("/arm", s.mutate(func(sess *session.Session) error {
		sess.Arm()
		return nil
	}))
	router.Post("/disarm", s.mutate(func(sess *session.Session) error {
		sess.Disarm()
		return nil
	}))
	router.Post("/toggle", s.mutate(func(sess *session.Session) error {
		sess.Toggle()
		return nil
	}))
	router.Post("/reset", s.mutate(func(sess *session.Session) error {
		sess.Reset()
		return nil
	}))
	router.Post("/markers", s.postMarker)
	router.Get("/measurement", s.getMeasurement)
	router.Get("/snapshot.png", s.getSnapshot)
	router.Post("/export", s.postExport)
}

// mutate applies fn on the session loop and responds with the new state
func (s *Server) mutate(fn func(*session.Session) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var resp StateResponse
		err := s.loop.Do(c.UserContext(), func(sess *session.Session) error {
			if err := fn(sess); err != nil {
				return err
			}
			resp = newStateResponse(sess)
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

func (s *Server) getState(c *fiber.Ctx) error {
	return s.mutate(func(*session.Session) error { return nil })(c)
}

func (s *Server) postMarker(c *fiber.Ctx) error {
	var req MarkerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
	}
	if err := s.validator.Struct(&req); err != nil {
		return err
	}

	c.Status(fiber.StatusCreated)
	return s.mutate(func(sess *session.Session) error {
		_, err := sess.Place(*req.X, *req.Y)
		return err
	})(c)
}

func (s *Server) readImage(c *fiber.Ctx) ([]byte, error) {
	if header, err := c.FormFile("image"); err == nil {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing image")
	}
	return append([]byte(nil), body...), nil
}

func (s *Server) postImage(c *fiber.Ctx) error {
	data, err := s.readImage(c)
	if err != nil {
		return err
	}
	img, err := imageinput.Decode(data)
	if err != nil {
		return err
	}
	return s.mutate(func(sess *session.Session) error {
		sess.SetImage(img.Image)
		return nil
	})(c)
}

func (s *Server) getMeasurement(c *fiber.Ctx) error {
	var resp *MeasurementResponse
	err := s.loop.Do(c.UserContext(), func(sess *session.Session) error {
		m, ok := sess.Measurement()
		if !ok {
			return errNoMeasurement
		}
		resp = newMeasurementResponse(m)
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *Server) snapshot(c *fiber.Ctx) (scene.Input, error) {
	var in scene.Input
	err := s.loop.Do(c.UserContext(), func(sess *session.Session) error {
		in = sess.Snapshot()
		return nil
	})
	return in, err
}

func (s *Server) getSnapshot(c *fiber.Ctx) error {
	in, err := s.snapshot(c)
	if err != nil {
		return err
	}
	img, err := s.pipeline.Snapshot(in)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

func (s *Server) postExport(c *fiber.Ctx) error {
	in, err := s.snapshot(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	res, err := s.pipeline.ExportTo(c.UserContext(), export.Request{Input: in}, export.WriterSink{W: &buf})
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(res.FileName)
	c.Set("X-Export-ID", res.ID.String())
	return c.Send(buf.Bytes())
}

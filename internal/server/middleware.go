package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the header and locals key of the request id
const RequestIDKey = "X-Request-ID"

func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(RequestIDKey, id)
		c.Set(RequestIDKey, id)
		return c.Next()
	}
}

func getRequestID(c *fiber.Ctx) string {
	id, ok := c.Locals(RequestIDKey).(string)
	if !ok || id == "" {
		return "unknown"
	}
	return id
}

func requestLogger(logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = statusFor(err)
			}
		}

		entry := logger.WithFields(logrus.Fields{
			"request_id": getRequestID(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case status >= 500:
			entry.Error("server error")
		case status >= 400:
			entry.Warn("client error")
		default:
			entry.Debug("request")
		}
		return err
	}
}

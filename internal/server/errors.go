package server

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/philipparndt/midline/internal/export"
	"github.com/philipparndt/midline/internal/imageinput"
	"github.com/philipparndt/midline/internal/placement"
	"github.com/philipparndt/midline/internal/session"
)

var errNoMeasurement = errors.New("no measurement available")

func statusFor(err error) int {
	var fe *fiber.Error
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, placement.ErrDisarmed),
		errors.Is(err, placement.ErrComplete),
		errors.Is(err, export.ErrExportInProgress):
		return fiber.StatusConflict
	case errors.Is(err, export.ErrNothingToExport):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, imageinput.ErrNotImage):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, session.ErrNoImage), errors.Is(err, errNoMeasurement):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(ErrorResponse{
		Error:     export.Notice(err),
		RequestID: getRequestID(c),
	})
}

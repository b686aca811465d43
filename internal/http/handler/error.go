package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pimapi/internal/service"
)

// failFromService translates a service error into the response envelope.
// Unknown errors become an opaque 500 so internals do not leak.
func failFromService(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict):
		return fail(c, fiber.StatusBadRequest, "value already in use")
	case errors.Is(err, service.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return fail(c, fiber.StatusBadRequest, "invalid email or password")
	case errors.Is(err, service.ErrLoginDisabled):
		return fail(c, fiber.StatusBadRequest, "account access is disabled")
	case errors.Is(err, service.ErrInvalidToken):
		return fail(c, fiber.StatusBadRequest, "invalid recovery token")
	case errors.Is(err, service.ErrUpstream):
		return fail(c, fiber.StatusBadRequest, "upstream provider failure")
	default:
		return fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that keeps every error,
// including routing and panic fallbacks, inside the response envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return fail(c, status, "bad request")
		case fiber.StatusUnauthorized:
			return fail(c, status, "authentication required")
		case fiber.StatusForbidden:
			return fail(c, status, "insufficient permissions")
		case fiber.StatusNotFound:
			return fail(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return fail(c, status, "method not allowed")
		default:
			return fail(c, status, "internal server error")
		}
	}
}

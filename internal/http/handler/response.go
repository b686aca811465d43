package handler

import (
	"github.com/gofiber/fiber/v2"

	"pimapi/internal/service"
)

// Responses share one envelope: {"status":"success","data":...} on success,
// {"status":"error","message":...,"code":...} on failure. List endpoints add
// meta.pagination.

type successPayload struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Meta   *meta  `json:"meta,omitempty"`
}

type meta struct {
	Pagination service.Pagination `json:"pagination"`
}

type errorPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func success(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(successPayload{Status: "success", Data: data})
}

func successPage(c *fiber.Ctx, status int, data any, pg service.Pagination) error {
	return c.Status(status).JSON(successPayload{
		Status: "success",
		Data:   data,
		Meta:   &meta{Pagination: pg},
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Status: "error", Message: message, Code: status})
}

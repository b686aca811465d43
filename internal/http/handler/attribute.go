package handler

import (
	"github.com/gofiber/fiber/v2"

	"pimapi/internal/service"
)

// AttributeGroupHandler exposes the attribute-group endpoints.
type AttributeGroupHandler struct {
	svc service.AttributeGroupService
}

// NewAttributeGroupHandler constructs a new AttributeGroupHandler.
func NewAttributeGroupHandler(svc service.AttributeGroupService) *AttributeGroupHandler {
	return &AttributeGroupHandler{svc: svc}
}

// List handles GET /attributes/?search=.
func (h *AttributeGroupHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, items)
}

// Create handles POST /attributes/add/.
func (h *AttributeGroupHandler) Create(c *fiber.Ctx) error {
	var req createAttributeGroupRequest
	if err := parseAndValidate(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Create(c.UserContext(), req.Name, req.Values)
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusCreated, out)
}

// Update handles PATCH /attributes/:id/update/.
func (h *AttributeGroupHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return failFromService(c, err)
	}

	var req updateAttributeGroupRequest
	if err := parseAndValidate(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Update(c.UserContext(), id, service.UpdateAttributeGroupInput{
		Name:   req.Name,
		Values: req.Values,
	})
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, out)
}

// Delete handles DELETE /attributes/:id/delete/.
func (h *AttributeGroupHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return failFromService(c, err)
	}

	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"id": id})
}

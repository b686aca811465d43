package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pimapi/internal/service"
)

// FamilyHandler exposes the product-family endpoints.
type FamilyHandler struct {
	svc service.FamilyService
}

// NewFamilyHandler constructs a new FamilyHandler.
func NewFamilyHandler(svc service.FamilyService) *FamilyHandler {
	return &FamilyHandler{svc: svc}
}

// List handles GET /families/?search=.
func (h *FamilyHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, items)
}

// Create handles POST /families/add/.
func (h *FamilyHandler) Create(c *fiber.Ctx) error {
	var req createFamilyRequest
	if err := parseAndValidate(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Create(c.UserContext(), req.Name, req.Attributes)
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusCreated, out)
}

// Attributes handles GET /families/:id/attributes/. An unknown or malformed
// family id is a 400 on this endpoint, kept for client compatibility.
func (h *FamilyHandler) Attributes(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "unknown product family")
	}

	groups, err := h.svc.Attributes(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return fail(c, fiber.StatusBadRequest, "unknown product family")
		}
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, groups)
}

// Update handles PATCH /families/:id/update/.
func (h *FamilyHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return failFromService(c, err)
	}

	var req updateFamilyRequest
	if err := parseAndValidate(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Update(c.UserContext(), id, service.UpdateFamilyInput{
		Name:              req.Name,
		AttributeGroupIDs: req.Attributes,
	})
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, out)
}

// Delete handles DELETE /families/:id/delete/.
func (h *FamilyHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return failFromService(c, err)
	}

	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"id": id})
}

package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"corebo/console/internal/descriptor"
	"corebo/console/internal/logic"
	"corebo/console/internal/middleware"
	"corebo/console/internal/response"
	"corebo/console/internal/types"
)

// DesignHandler manages stored form designs.
type DesignHandler struct {
	designLogic *logic.DesignLogic
}

// NewDesignHandler creates the design handler.
func NewDesignHandler(designLogic *logic.DesignLogic) *DesignHandler {
	return &DesignHandler{designLogic: designLogic}
}

// Save creates or updates a form design. The body is parsed before it is
// stored so broken descriptors never reach the registry.
func (h *DesignHandler) Save(c *fiber.Ctx) error {
	var req types.SaveFormDesignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	if req.Key == "" || req.Body == "" {
		return response.Error(c, "key and body are required")
	}

	design, err := h.designLogic.Save(c.Context(), &req, middleware.GetCurrentUserID(c))
	if err != nil {
		var perrs descriptor.ParseErrors
		if errors.As(err, &perrs) {
			return response.ErrorWithCode(c, fiber.StatusUnprocessableEntity, perrs.Error())
		}
		return response.Error(c, err.Error())
	}

	return response.Success(c, design)
}

// Delete removes a form design by id.
func (h *DesignHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.Error(c, "invalid design id")
	}

	if err := h.designLogic.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, logic.ErrDesignNotFound) {
			return response.NotFound(c, "design not found")
		}
		return response.Error(c, err.Error())
	}
	return response.Success(c, nil)
}

// Get loads one form design with its body.
func (h *DesignHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.Error(c, "invalid design id")
	}

	design, err := h.designLogic.Get(uint(id))
	if err != nil {
		if errors.Is(err, logic.ErrDesignNotFound) {
			return response.NotFound(c, "design not found")
		}
		return response.Error(c, err.Error())
	}
	return response.Success(c, design)
}

// List returns a filtered page of form designs without bodies.
func (h *DesignHandler) List(c *fiber.Ctx) error {
	var req types.ListFormDesignsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	items, total, err := h.designLogic.List(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}

	return response.Success(c, fiber.Map{
		"items": items,
		"total": total,
	})
}

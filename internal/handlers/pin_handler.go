package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/services"
)

type PinHandler struct {
	pins *services.PinService
}

func NewPinHandler(pins *services.PinService) *PinHandler {
	return &PinHandler{pins: pins}
}

func (h *PinHandler) List(c *fiber.Ctx) error {
	pins, err := h.pins.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pins)
}

func (h *PinHandler) Pin(c *fiber.Ctx) error {
	var req dto.PinRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	start, err := parseTime(req.StartDate)
	if err != nil {
		return badRequest(c, "start_date must be a date")
	}
	end, err := parseTime(req.EndDate)
	if err != nil {
		return badRequest(c, "end_date must be a date")
	}

	pin, err := h.pins.Pin(c.UserContext(), models.PinType(req.ItemType), req.ItemID, start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pin)
}

func (h *PinHandler) Unpin(c *fiber.Ctx) error {
	if err := h.pins.Unpin(c.UserContext(), models.PinType(c.Params("type")), c.Params("itemId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

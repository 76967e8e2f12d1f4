package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/services"
)

type HealthRecordHandler struct {
	records *services.HealthService
}

func NewHealthRecordHandler(records *services.HealthService) *HealthRecordHandler {
	return &HealthRecordHandler{records: records}
}

func toHealthInput(req dto.HealthRecordRequest) services.HealthInput {
	return services.HealthInput{
		Type:    models.HealthRecordType(req.Type),
		Date:    req.Date,
		Notes:   req.Notes,
		VetName: req.VetName,
	}
}

func (h *HealthRecordHandler) List(c *fiber.Ctx) error {
	recs, err := h.records.List(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(recs)
}

func (h *HealthRecordHandler) Create(c *fiber.Ctx) error {
	var req dto.HealthRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	rec, err := h.records.Add(c.UserContext(), actor(c), c.Params("id"), toHealthInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *HealthRecordHandler) Update(c *fiber.Ctx) error {
	var req dto.HealthRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	rec, err := h.records.Update(c.UserContext(), actor(c), c.Params("id"), c.Params("recordId"), toHealthInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rec)
}

func (h *HealthRecordHandler) Delete(c *fiber.Ctx) error {
	if err := h.records.Delete(c.UserContext(), actor(c), c.Params("id"), c.Params("recordId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

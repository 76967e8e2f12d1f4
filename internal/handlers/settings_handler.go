package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/services"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the stored settings merged over the defaults (public).
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.settings.Get(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(s)
}

// Update replaces the settings. Fields missing from the body keep their
// current value.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	next, err := h.settings.Get(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	if err := c.BodyParser(&next); err != nil {
		return invalidBody(c)
	}
	saved, err := h.settings.Update(c.UserContext(), next)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(saved)
}

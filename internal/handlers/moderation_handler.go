package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/services"
)

type ModerationHandler struct {
	moderation *services.ModerationService
}

func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

func (h *ModerationHandler) Queue(c *fiber.Ctx) error {
	entries, err := h.moderation.Queue(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entries)
}

func (h *ModerationHandler) FinderQueue(c *fiber.Ctx) error {
	stories, err := h.moderation.FinderQueue(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stories)
}

func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	story, err := h.moderation.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(story)
}

func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	pet, err := h.moderation.Reject(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pet)
}

func (h *ModerationHandler) ApproveFinder(c *fiber.Ctx) error {
	story, err := h.moderation.ApproveFinder(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(story)
}

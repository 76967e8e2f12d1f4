package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/services"
)

type FeedHandler struct {
	feed *services.FeedService
}

func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) Home(c *fiber.Ctx) error {
	page, err := h.feed.Home(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *FeedHandler) Alerts(c *fiber.Ctx) error {
	page, err := h.feed.Alerts(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *FeedHandler) Found(c *fiber.Ctx) error {
	page, err := h.feed.Found(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

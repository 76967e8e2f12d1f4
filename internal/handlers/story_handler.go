package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/services"
)

type StoryHandler struct {
	stories *services.StoryService
}

func NewStoryHandler(stories *services.StoryService) *StoryHandler {
	return &StoryHandler{stories: stories}
}

func (h *StoryHandler) List(c *fiber.Ctx) error {
	views, err := h.stories.ListPublic(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(views)
}

func (h *StoryHandler) Like(c *fiber.Ctx) error {
	story, err := h.stories.Like(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(story)
}

func (h *StoryHandler) Comments(c *fiber.Ctx) error {
	comments, err := h.stories.Comments(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}

func (h *StoryHandler) AddComment(c *fiber.Ctx) error {
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	comment, err := h.stories.AddComment(c.UserContext(), actor(c), c.Params("id"), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// FinderLookup shows the story behind a capability link. No session needed.
func (h *StoryHandler) FinderLookup(c *fiber.Ctx) error {
	res, err := h.stories.FinderLookup(c.UserContext(), c.Params("token"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

func (h *StoryHandler) FinderRedeem(c *fiber.Ctx) error {
	var req dto.FinderTestimonialRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	story, err := h.stories.RedeemFinder(c.UserContext(), c.Params("token"), req.FinderName, req.FinderTestimonial)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(story)
}

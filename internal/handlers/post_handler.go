package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/services"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req dto.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	post, err := h.posts.Create(c.UserContext(), actor(c).ID, req.Text, req.ImageURL)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) Like(c *fiber.Ctx) error {
	post, err := h.posts.Like(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) AdminList(c *fiber.Ctx) error {
	posts, err := h.posts.ListAdmin(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// parseAdminPost reads an admin post body. A non-empty message means the
// request is malformed.
func parseAdminPost(c *fiber.Ctx) (services.AdminPostInput, string) {
	var req dto.AdminPostRequest
	if err := c.BodyParser(&req); err != nil {
		return services.AdminPostInput{}, "Invalid request body"
	}
	start, err := parseOptionalTime(req.StartDate)
	if err != nil {
		return services.AdminPostInput{}, "start_date must be a date"
	}
	end, err := parseOptionalTime(req.EndDate)
	if err != nil {
		return services.AdminPostInput{}, "end_date must be a date"
	}
	return services.AdminPostInput{
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		Category:  models.PostCategory(req.Category),
		Status:    models.PostStatus(req.Status),
		StartDate: start,
		EndDate:   end,
	}, ""
}

func (h *PostHandler) AdminCreate(c *fiber.Ctx) error {
	in, msg := parseAdminPost(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	post, err := h.posts.CreateAdmin(c.UserContext(), actor(c).ID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) AdminUpdate(c *fiber.Ctx) error {
	in, msg := parseAdminPost(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	post, err := h.posts.UpdateAdmin(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

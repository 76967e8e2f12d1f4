package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/services"
)

type ChatHandler struct {
	chats *services.ChatService
}

func NewChatHandler(chats *services.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

func (h *ChatHandler) Inbox(c *fiber.Ctx) error {
	entries, err := h.chats.Inbox(c.UserContext(), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entries)
}

// Start opens a thread with another member, or returns the existing one.
func (h *ChatHandler) Start(c *fiber.Ctx) error {
	var req dto.StartChatRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	thread, err := h.chats.Start(c.UserContext(), actor(c), req.ParticipantID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(thread)
}

func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	msgs, err := h.chats.Messages(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(msgs)
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	msg, err := h.chats.Send(c.UserContext(), actor(c), c.Params("id"), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/aigen"
	"github.com/lovemypet/backend/internal/dto"
)

// AssistHandler exposes the writing helpers. Every endpoint answers with
// fallback text when no provider is configured or generation fails.
type AssistHandler struct {
	assistant *aigen.Assistant
}

func NewAssistHandler(assistant *aigen.Assistant) *AssistHandler {
	return &AssistHandler{assistant: assistant}
}

func parseAssist(c *fiber.Ctx) (dto.AssistRequest, aigen.PetFacts, bool) {
	var req dto.AssistRequest
	if err := c.BodyParser(&req); err != nil {
		return req, aigen.PetFacts{}, false
	}
	return req, aigen.PetFacts{
		Name:              req.Name,
		Species:           req.Species,
		Breed:             req.Breed,
		Color:             req.Color,
		Age:               req.Age,
		RoamingArea:       req.RoamingArea,
		PersonalityTraits: req.PersonalityTraits,
		Description:       req.Description,
		LastSeenLocation:  req.LastSeenLocation,
	}, true
}

func (h *AssistHandler) Description(c *fiber.Ctx) error {
	req, pet, ok := parseAssist(c)
	if !ok {
		return invalidBody(c)
	}
	return c.JSON(dto.AssistTextResponse{Text: h.assistant.Description(c.UserContext(), pet, req.ImageDataURL)})
}

func (h *AssistHandler) Keywords(c *fiber.Ctx) error {
	_, pet, ok := parseAssist(c)
	if !ok {
		return invalidBody(c)
	}
	return c.JSON(dto.AssistKeywordsResponse{Keywords: h.assistant.Keywords(c.UserContext(), pet)})
}

func (h *AssistHandler) MissingMessage(c *fiber.Ctx) error {
	req, pet, ok := parseAssist(c)
	if !ok {
		return invalidBody(c)
	}
	text := h.assistant.MissingMessage(c.UserContext(), pet, req.LastSeenLocation, req.LastSeenTime)
	return c.JSON(dto.AssistTextResponse{Text: text})
}

func (h *AssistHandler) OwnerTestimonial(c *fiber.Ctx) error {
	_, pet, ok := parseAssist(c)
	if !ok {
		return invalidBody(c)
	}
	return c.JSON(dto.AssistTextResponse{Text: h.assistant.OwnerTestimonial(c.UserContext(), pet)})
}

func (h *AssistHandler) FinderTestimonial(c *fiber.Ctx) error {
	_, pet, ok := parseAssist(c)
	if !ok {
		return invalidBody(c)
	}
	return c.JSON(dto.AssistTextResponse{Text: h.assistant.FinderTestimonial(c.UserContext(), pet)})
}

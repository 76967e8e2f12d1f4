package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/services"
)

type PetHandler struct {
	pets    *services.PetService
	stories *services.StoryService
}

func NewPetHandler(pets *services.PetService, stories *services.StoryService) *PetHandler {
	return &PetHandler{pets: pets, stories: stories}
}

func toPetInput(req dto.PetRequest) services.PetInput {
	return services.PetInput{
		Name:           req.Name,
		Species:        req.Species,
		Breed:          req.Breed,
		Color:          req.Color,
		Age:            req.Age,
		PhotoURLs:      req.PhotoURLs,
		Description:    req.Description,
		Keywords:       req.Keywords,
		RoamingArea:    req.RoamingArea,
		RoamingAreaLat: req.RoamingAreaLat,
		RoamingAreaLng: req.RoamingAreaLng,
	}
}

func (h *PetHandler) Get(c *fiber.Ctx) error {
	pet, err := h.pets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pet)
}

func (h *PetHandler) Create(c *fiber.Ctx) error {
	var req dto.PetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	pet, err := h.pets.Create(c.UserContext(), actor(c).ID, toPetInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pet)
}

func (h *PetHandler) Update(c *fiber.Ctx) error {
	var req dto.PetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	pet, err := h.pets.Update(c.UserContext(), actor(c), c.Params("id"), toPetInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pet)
}

func (h *PetHandler) Delete(c *fiber.Ctx) error {
	if err := h.pets.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PetHandler) ReportMissing(c *fiber.Ctx) error {
	var req dto.ReportMissingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	seen, err := parseTime(req.LastSeenTime)
	if err != nil {
		return badRequest(c, "last_seen_time must be an RFC 3339 timestamp")
	}

	pet, err := h.pets.ReportMissing(c.UserContext(), actor(c), c.Params("id"), services.MissingReport{
		Location: req.LastSeenLocation,
		Time:     seen,
		Lat:      req.LastSeenLat,
		Lng:      req.LastSeenLng,
		Message:  req.MissingReportMessage,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pet)
}

func (h *PetHandler) MarkSafe(c *fiber.Ctx) error {
	pet, err := h.pets.MarkSafe(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pet)
}

func (h *PetHandler) SubmitReunion(c *fiber.Ctx) error {
	var req dto.ReunionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in := services.ReunionInput{OwnerTestimonial: req.OwnerTestimonial, OwnerRating: req.OwnerRating}
	if req.ReunionDate != "" {
		date, err := parseTime(req.ReunionDate)
		if err != nil {
			return badRequest(c, "reunion_date must be a date")
		}
		in.ReunionDate = date
	}

	res, err := h.stories.SubmitReunion(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReunionResponse{
		Pet:        res.Pet,
		Story:      res.Story,
		FinderLink: res.FinderLink,
	})
}

func (h *PetHandler) AdminList(c *fiber.Ctx) error {
	pets, err := h.pets.AdminList(c.UserContext(), c.Query("tab", services.TabAllActive), c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pets)
}

func (h *PetHandler) Archive(c *fiber.Ctx) error {
	pet, err := h.pets.Archive(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pet)
}

func (h *PetHandler) Restore(c *fiber.Ctx) error {
	pet, err := h.pets.Restore(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pet)
}

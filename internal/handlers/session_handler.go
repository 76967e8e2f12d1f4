package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/services"
	"github.com/lovemypet/backend/internal/session"
)

type SessionHandler struct {
	users *services.UserService
	pets  *services.PetService
}

func NewSessionHandler(users *services.UserService, pets *services.PetService) *SessionHandler {
	return &SessionHandler{users: users, pets: pets}
}

// Login starts a mock session for an existing member.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.Email == "" {
		return badRequest(c, "email is required")
	}

	token, user, err := h.users.Login(c.UserContext(), req.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SessionResponse{Token: token, User: user})
}

func (h *SessionHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	token, user, err := h.users.Signup(c.UserContext(), services.SignupInput{
		Name:              req.Name,
		DisplayName:       req.DisplayName,
		Email:             req.Email,
		City:              req.City,
		MobileNumber:      req.MobileNumber,
		ContactPreference: models.ContactPreference(req.ContactPreference),
		ProfilePhotoURL:   req.ProfilePhotoURL,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{Token: token, User: user})
}

func (h *SessionHandler) Me(c *fiber.Ctx) error {
	member, _ := session.Member(c)
	return c.JSON(member)
}

func (h *SessionHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	upd := services.ProfileUpdate{
		Name:                 req.Name,
		DisplayName:          req.DisplayName,
		City:                 req.City,
		ProfilePhotoURL:      req.ProfilePhotoURL,
		MobileNumber:         req.MobileNumber,
		MemberVettedPhotoURL: req.MemberVettedPhotoURL,
	}
	if req.ContactPreference != nil {
		pref := models.ContactPreference(*req.ContactPreference)
		upd.ContactPreference = &pref
	}

	user, err := h.users.UpdateProfile(c.UserContext(), session.UserID(c), upd)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *SessionHandler) MyPets(c *fiber.Ctx) error {
	pets, err := h.pets.ListByOwner(c.UserContext(), session.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pets)
}

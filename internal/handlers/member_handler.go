package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/services"
)

// MemberHandler serves the admin member directory and vetting queue.
type MemberHandler struct {
	users *services.UserService
	pets  *services.PetService
}

func NewMemberHandler(users *services.UserService, pets *services.PetService) *MemberHandler {
	return &MemberHandler{users: users, pets: pets}
}

func (h *MemberHandler) List(c *fiber.Ctx) error {
	status := models.UserStatus(c.Query("status"))
	if status != "" && !models.ValidUserStatus(status) {
		return badRequest(c, "invalid status filter")
	}
	users, err := h.users.List(c.UserContext(), status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

// Get returns a member profile with their pets. Public.
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	pets, err := h.pets.ListByOwner(c.UserContext(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MemberResponse{User: user, Pets: pets})
}

func (h *MemberHandler) Update(c *fiber.Ctx) error {
	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	var upd services.AdminUserUpdate
	if req.Role != nil {
		role := models.Role(*req.Role)
		upd.Role = &role
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		upd.Status = &status
	}
	if req.VettingStatus != nil {
		vetting := models.VettingStatus(*req.VettingStatus)
		upd.VettingStatus = &vetting
	}

	user, err := h.users.AdminUpdate(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *MemberHandler) PendingVetting(c *fiber.Ctx) error {
	users, err := h.users.PendingVetting(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *MemberHandler) ApproveVetting(c *fiber.Ctx) error {
	user, err := h.users.ApproveVetting(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *MemberHandler) RejectVetting(c *fiber.Ctx) error {
	user, err := h.users.RejectVetting(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

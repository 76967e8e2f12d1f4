package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/services"
)

type AdHandler struct {
	ads *services.AdService
}

func NewAdHandler(ads *services.AdService) *AdHandler {
	return &AdHandler{ads: ads}
}

func toAdvertiserInput(req dto.AdvertiserRequest) services.AdvertiserInput {
	return services.AdvertiserInput{
		CompanyName:    req.CompanyName,
		ContactPerson:  req.ContactPerson,
		Email:          req.Email,
		Phone:          req.Phone,
		BillingAddress: req.BillingAddress,
		TaxID:          req.TaxID,
		Website:        req.Website,
		Notes:          req.Notes,
		Status:         models.AdvertiserStatus(req.Status),
	}
}

func (h *AdHandler) ListAdvertisers(c *fiber.Ctx) error {
	list, err := h.ads.ListAdvertisers(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *AdHandler) CreateAdvertiser(c *fiber.Ctx) error {
	var req dto.AdvertiserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	a, err := h.ads.CreateAdvertiser(c.UserContext(), toAdvertiserInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AdHandler) UpdateAdvertiser(c *fiber.Ctx) error {
	var req dto.AdvertiserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	a, err := h.ads.UpdateAdvertiser(c.UserContext(), c.Params("id"), toAdvertiserInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

func (h *AdHandler) ListAdverts(c *fiber.Ctx) error {
	list, err := h.ads.ListAdverts(c.UserContext(), c.Query("advertiser_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

// parseAdvert reads an advert body. A non-empty message means the request
// is malformed.
func parseAdvert(c *fiber.Ctx) (services.AdvertInput, string) {
	var req dto.AdvertRequest
	if err := c.BodyParser(&req); err != nil {
		return services.AdvertInput{}, "Invalid request body"
	}
	start, err := parseTime(req.StartDate)
	if err != nil {
		return services.AdvertInput{}, "start_date must be a date"
	}
	end, err := parseTime(req.EndDate)
	if err != nil {
		return services.AdvertInput{}, "end_date must be a date"
	}
	return services.AdvertInput{
		AdvertiserID: req.AdvertiserID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Geolocation:  req.Geolocation,
		ImageURL:     req.ImageURL,
		URL:          req.URL,
		StartDate:    start,
		EndDate:      end,
		Frequency:    req.Frequency,
		Budget:       req.Budget,
		DisplayPages: req.DisplayPages,
		Format:       models.AdvertFormat(req.Format),
	}, ""
}

func (h *AdHandler) CreateAdvert(c *fiber.Ctx) error {
	in, msg := parseAdvert(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	a, err := h.ads.CreateAdvert(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AdHandler) UpdateAdvert(c *fiber.Ctx) error {
	in, msg := parseAdvert(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	a, err := h.ads.UpdateAdvert(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

func (h *AdHandler) SetAdvertStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	a, err := h.ads.SetAdvertStatus(c.UserContext(), c.Params("id"), models.AdvertStatus(req.Status))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

package handlers

import (
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/services"
)

var policyPage = template.Must(template.New("policy").Parse(`<!DOCTYPE html>
<html><head><title>{{.Title}} - {{.AppName}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>{{.Title}}</h1>
<p>Last updated: {{.LastUpdated}}</p>
{{.Body}}
</body></html>`))

type PolicyHandler struct {
	policies *services.PolicyService
	settings *services.SettingsService
}

func NewPolicyHandler(policies *services.PolicyService, settings *services.SettingsService) *PolicyHandler {
	return &PolicyHandler{policies: policies, settings: settings}
}

func (h *PolicyHandler) List(c *fiber.Ctx) error {
	list, err := h.policies.List(c.UserContext(), false)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *PolicyHandler) AdminList(c *fiber.Ctx) error {
	list, err := h.policies.List(c.UserContext(), true)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

// Get returns the policy with its rendered HTML. Archived policies are
// hidden from the public.
func (h *PolicyHandler) Get(c *fiber.Ctx) error {
	p, err := h.policies.Render(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if p.Status != models.PolicyActive {
		return fail(c, services.ErrPolicyNotFound)
	}
	return c.JSON(p)
}

// Page serves a policy as a standalone HTML document.
func (h *PolicyHandler) Page(c *fiber.Ctx) error {
	p, err := h.policies.Render(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if p.Status != models.PolicyActive {
		return fail(c, services.ErrPolicyNotFound)
	}

	var out strings.Builder
	err = policyPage.Execute(&out, map[string]any{
		"Title":       p.Title,
		"AppName":     h.settings.Current(c.UserContext()).General.AppName,
		"LastUpdated": p.LastUpdated.Format("January 2, 2006"),
		"Body":        template.HTML(p.HTML),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Type("html").SendString(out.String())
}

func (h *PolicyHandler) Update(c *fiber.Ctx) error {
	var req dto.PolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	p, err := h.policies.UpdateContent(c.UserContext(), c.Params("id"), req.Title, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

func (h *PolicyHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	p, err := h.policies.SetStatus(c.UserContext(), c.Params("id"), models.PolicyStatus(req.Status))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

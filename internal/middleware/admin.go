package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/config"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/session"
)

// ResolveAdmin marks the request as admin when it carries the configured
// X-Admin-Token or comes from a member whose email is listed in ADMIN_EMAILS.
// Members with the Admin role need no grant. It runs ahead of every gate that
// asks session.IsAdmin, so those gates agree on who is an admin.
func ResolveAdmin(cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			session.GrantAdmin(c)
			return c.Next()
		}
		if member, ok := session.Member(c); ok && contains(adminEmails, strings.ToLower(member.Email)) {
			session.GrantAdmin(c)
		}
		return c.Next()
	}
}

// AdminRequired admits requests ResolveAdmin granted and members with the
// Admin role.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if session.IsAdmin(c) {
			return c.Next()
		}
		if _, ok := session.Member(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/services"
	"github.com/lovemypet/backend/internal/session"
)

// Routes that stay reachable while the site is in maintenance.
var maintenanceOpenPaths = []string{
	"/api/health",
	"/api/session",
	"/api/settings",
	"/api/policies",
	"/api/legal/",
	"/api/finder-testimonial/",
	"/api/admin/",
}

// Maintenance turns away non-admin traffic while maintenance mode is on.
func Maintenance(settings *services.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !settings.Current(c.UserContext()).General.MaintenanceMode {
			return c.Next()
		}
		if session.IsAdmin(c) {
			return c.Next()
		}
		path := c.Path()
		for _, open := range maintenanceOpenPaths {
			if strings.HasPrefix(path, open) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "LoveMyPet is undergoing maintenance. Please check back soon.",
		})
	}
}

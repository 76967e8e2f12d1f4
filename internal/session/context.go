// Package session reads the signed-in member from the request context.
package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lovemypet/backend/internal/models"
)

const (
	tokenKey  = "user"
	memberKey = "member"
	adminKey  = "granted_admin"
)

var ErrNoSession = errors.New("no session")

// Subject extracts the member id from the JWT claims in context.
func Subject(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals(tokenKey).(*jwt.Token)
	if !ok || token == nil {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}

func SetMember(c *fiber.Ctx, u models.User) {
	c.Locals(memberKey, u)
}

// Member returns the member loaded for this request, if any.
func Member(c *fiber.Ctx) (models.User, bool) {
	u, ok := c.Locals(memberKey).(models.User)
	return u, ok
}

func UserID(c *fiber.Ctx) string {
	if u, ok := Member(c); ok {
		return u.ID
	}
	return ""
}

// GrantAdmin marks the request as admin without the member holding the
// Admin role: the static admin token, or an email listed in ADMIN_EMAILS.
func GrantAdmin(c *fiber.Ctx) {
	c.Locals(adminKey, true)
}

func IsAdmin(c *fiber.Ctx) bool {
	if ok, _ := c.Locals(adminKey).(bool); ok {
		return true
	}
	u, ok := Member(c)
	return ok && u.IsAdmin()
}

// Role is the effective role; a granted admin counts as Admin.
func Role(c *fiber.Ctx) models.Role {
	if IsAdmin(c) {
		return models.RoleAdmin
	}
	if u, ok := Member(c); ok {
		return u.Role
	}
	return ""
}

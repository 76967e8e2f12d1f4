package middleware

import (
	"errors"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/config"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/session"
	"github.com/lovemypet/backend/internal/storage"
)

// OptionalJWT verifies a bearer token when one is sent. Requests without an
// Authorization header pass through anonymously; a bad token is rejected.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		Filter: func(c *fiber.Ctx) bool {
			return !strings.HasPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// LoadMember resolves the token subject to a stored member. Members blocked
// or archived after signing in lose access on their next request.
func LoadMember(users storage.Repository[models.User]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := session.Subject(c)
		if errors.Is(err, session.ErrNoSession) {
			return c.Next()
		}
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		member, err := users.Get(c.UserContext(), sub)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: unknown member",
			})
		}
		if !member.CanSignIn() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Account is blocked or archived",
			})
		}
		session.SetMember(c, member)
		return c.Next()
	}
}

func MemberRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := session.Member(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Next()
	}
}

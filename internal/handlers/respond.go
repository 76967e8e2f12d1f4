package handlers

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/lifecycle"
	"github.com/lovemypet/backend/internal/services"
	"github.com/lovemypet/backend/internal/session"
)

var notFoundErrors = []error{
	services.ErrUserNotFound,
	services.ErrPetNotFound,
	services.ErrStoryNotFound,
	services.ErrPostNotFound,
	services.ErrPinNotFound,
	services.ErrAdvertiserNotFound,
	services.ErrAdvertNotFound,
	services.ErrPolicyNotFound,
	services.ErrHealthNotFound,
	services.ErrChatNotFound,
}

func statusFor(err error) int {
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			return fiber.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidDateRange):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrAccountDisabled):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, lifecycle.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidOrExpiredToken):
		return fiber.StatusGone
	}
	return fiber.StatusInternalServerError
}

// fail maps a service error to its HTTP status. Server errors are logged
// and their details hidden from the client.
func fail(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", c.Locals("requestid"),
			"user_id", session.UserID(c),
			"action", c.Method()+" "+c.Route().Path,
			"error", err,
		)
		message = "Internal server error"
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "Invalid request body")
}

func actor(c *fiber.Ctx) services.Actor {
	return services.Actor{ID: session.UserID(c), Role: session.Role(c)}
}

// parseTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// parseOptionalTime returns nil for an empty string.
func parseOptionalTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

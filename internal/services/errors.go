package services

import (
	"errors"
	"fmt"

	"github.com/lovemypet/backend/internal/storage"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPetNotFound        = errors.New("pet not found")
	ErrStoryNotFound      = errors.New("story not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrPinNotFound        = errors.New("pin not found")
	ErrAdvertiserNotFound = errors.New("advertiser not found")
	ErrAdvertNotFound     = errors.New("advert not found")
	ErrPolicyNotFound     = errors.New("policy not found")
	ErrHealthNotFound     = errors.New("health record not found")
	ErrChatNotFound       = errors.New("chat not found")

	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrEmailTaken            = errors.New("email already registered")
	ErrAccountDisabled       = errors.New("account is blocked or archived")
	ErrForbidden             = errors.New("not allowed to modify this resource")
	ErrInvalidDateRange      = errors.New("end date cannot be before the start date")
	ErrValidation            = errors.New("validation failed")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// mapNotFound swaps the storage sentinel for the domain one.
func mapNotFound(err, domain error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return domain
	}
	return err
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

type SignupInput struct {
	Name              string
	DisplayName       string
	Email             string
	City              string
	MobileNumber      string
	ContactPreference models.ContactPreference
	ProfilePhotoURL   string
}

type ProfileUpdate struct {
	Name                 *string
	DisplayName          *string
	City                 *string
	ProfilePhotoURL      *string
	MobileNumber         *string
	ContactPreference    *models.ContactPreference
	MemberVettedPhotoURL *string
}

type AdminUserUpdate struct {
	Role          *models.Role
	Status        *models.UserStatus
	VettingStatus *models.VettingStatus
}

type UserService struct {
	users     storage.Repository[models.User]
	settings  *SettingsService
	jwtSecret []byte
	jwtExpiry time.Duration
	now       func() time.Time
}

func NewUserService(users storage.Repository[models.User], settings *SettingsService, jwtSecret string, jwtExpiry time.Duration) *UserService {
	return &UserService{
		users:     users,
		settings:  settings,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		now:       time.Now,
	}
}

// Login starts a session for the member registered under email. There are
// no passwords: picking an account is the whole sign-in.
func (s *UserService) Login(ctx context.Context, email string) (string, models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return "", models.User{}, err
	}
	if !user.CanSignIn() {
		return "", models.User{}, ErrAccountDisabled
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (string, models.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Email == "" || !strings.Contains(in.Email, "@") {
		return "", models.User{}, validationError("name and a valid email are required")
	}
	if _, err := s.FindByEmail(ctx, in.Email); err == nil {
		return "", models.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", models.User{}, err
	}

	pref := in.ContactPreference
	if pref == "" {
		pref = models.ContactEmail
	}
	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Name
	}

	settings := s.settings.Current(ctx)
	user := models.User{
		ID:                uuid.NewString(),
		Name:              in.Name,
		DisplayName:       displayName,
		City:              in.City,
		ProfilePhotoURL:   in.ProfilePhotoURL,
		Email:             in.Email,
		MobileNumber:      in.MobileNumber,
		ContactPreference: pref,
		Role:              settings.UserPetManagement.DefaultUserRole,
		Status:            models.UserActive,
		VettingStatus:     models.VettingPending,
		JoinDate:          s.now().UTC(),
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return "", models.User{}, ErrEmailTaken
		}
		return "", models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(created)
	if err != nil {
		return "", models.User{}, err
	}
	return token, created, nil
}

func (s *UserService) IssueToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.jwtExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return models.User{}, mapNotFound(err, ErrUserNotFound)
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	email = strings.TrimSpace(email)
	u, err := storage.FindOne(ctx, s.users, func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return models.User{}, mapNotFound(err, ErrUserNotFound)
	}
	return u, nil
}

// List returns members ordered by join date, optionally restricted to one status.
func (s *UserService) List(ctx context.Context, status models.UserStatus) ([]models.User, error) {
	users, err := storage.Filter(ctx, s.users, func(u models.User) bool {
		return status == "" || u.Status == status
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].JoinDate.Before(users[j].JoinDate) })
	return users, nil
}

func (s *UserService) PendingVetting(ctx context.Context) ([]models.User, error) {
	return storage.Filter(ctx, s.users, func(u models.User) bool {
		return u.VettingStatus == models.VettingPending
	})
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return models.User{}, validationError("name is required")
		}
		u.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.City != nil {
		u.City = *upd.City
	}
	if upd.ProfilePhotoURL != nil {
		u.ProfilePhotoURL = *upd.ProfilePhotoURL
	}
	if upd.MobileNumber != nil {
		u.MobileNumber = *upd.MobileNumber
	}
	if upd.ContactPreference != nil {
		switch *upd.ContactPreference {
		case models.ContactEmail, models.ContactMobile, models.ContactBoth, models.ContactNone:
			u.ContactPreference = *upd.ContactPreference
		default:
			return models.User{}, validationError("invalid contact preference %q", *upd.ContactPreference)
		}
	}
	if upd.MemberVettedPhotoURL != nil {
		u.MemberVettedPhotoURL = *upd.MemberVettedPhotoURL
	}
	u.UpdatedAt = s.now().UTC()
	return s.users.Update(ctx, u)
}

func (s *UserService) AdminUpdate(ctx context.Context, id string, upd AdminUserUpdate) (models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if upd.Role != nil {
		if !models.ValidRole(*upd.Role) {
			return models.User{}, validationError("invalid role %q", *upd.Role)
		}
		u.Role = *upd.Role
	}
	if upd.Status != nil {
		if !models.ValidUserStatus(*upd.Status) {
			return models.User{}, validationError("invalid status %q", *upd.Status)
		}
		u.Status = *upd.Status
	}
	if upd.VettingStatus != nil {
		if !models.ValidVettingStatus(*upd.VettingStatus) {
			return models.User{}, validationError("invalid vetting status %q", *upd.VettingStatus)
		}
		u.VettingStatus = *upd.VettingStatus
	}
	u.UpdatedAt = s.now().UTC()
	return s.users.Update(ctx, u)
}

func (s *UserService) ApproveVetting(ctx context.Context, id string) (models.User, error) {
	verified := models.VettingVerified
	return s.AdminUpdate(ctx, id, AdminUserUpdate{VettingStatus: &verified})
}

// RejectVetting marks the member unverified and blocks the account.
func (s *UserService) RejectVetting(ctx context.Context, id string) (models.User, error) {
	notVerified := models.VettingNotVerified
	blocked := models.UserBlocked
	return s.AdminUpdate(ctx, id, AdminUserUpdate{VettingStatus: &notVerified, Status: &blocked})
}

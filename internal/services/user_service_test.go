package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lovemypet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newUserService(env *testEnv) *UserService {
	return NewUserService(env.stores.Users, env.settings, testSecret, time.Hour)
}

func parseToken(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	return claims
}

func TestLogin(t *testing.T) {
	svc := newUserService(newTestEnv(t))

	token, user, err := svc.Login(context.Background(), "JANE.SMITH@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-2", user.ID)

	claims := parseToken(t, token)
	assert.Equal(t, "user-2", claims["sub"])
	assert.Equal(t, "User", claims["role"])
}

func TestLogin_Rejections(t *testing.T) {
	svc := newUserService(newTestEnv(t))

	_, _, err := svc.Login(context.Background(), "maria.garcia@example.com")
	assert.ErrorIs(t, err, ErrAccountDisabled)

	_, _, err = svc.Login(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newTestEnv(t))

	token, user, err := svc.Signup(ctx, SignupInput{Name: "Lee Park", Email: " Lee@Example.com "})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "lee@example.com", user.Email)
	assert.Equal(t, "Lee Park", user.DisplayName)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, models.VettingPending, user.VettingStatus)
	assert.Equal(t, models.ContactEmail, user.ContactPreference)

	_, _, err = svc.Signup(ctx, SignupInput{Name: "Lee Again", Email: "lee@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Signup(ctx, SignupInput{Name: "No Email"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignup_UsesDefaultRoleSetting(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	s := DefaultSettings()
	s.UserPetManagement.DefaultUserRole = models.RoleModerator
	_, err := env.settings.Update(ctx, s)
	require.NoError(t, err)

	_, user, err := newUserService(env).Signup(ctx, SignupInput{Name: "Mo", Email: "mo@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
}

func TestVetting(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newTestEnv(t))

	pending, err := svc.PendingVetting(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "user-3", pending[0].ID)

	u, err := svc.ApproveVetting(ctx, "user-3")
	require.NoError(t, err)
	assert.Equal(t, models.VettingVerified, u.VettingStatus)

	u, err = svc.RejectVetting(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, models.VettingNotVerified, u.VettingStatus)
	assert.Equal(t, models.UserBlocked, u.Status)

	_, _, err = svc.Login(ctx, "jane.smith@example.com")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newTestEnv(t))

	city := "Boston, MA"
	u, err := svc.UpdateProfile(ctx, "user-2", ProfileUpdate{City: &city})
	require.NoError(t, err)
	assert.Equal(t, city, u.City)
	assert.Equal(t, "Jane Smith", u.Name)

	blank := " "
	_, err = svc.UpdateProfile(ctx, "user-2", ProfileUpdate{Name: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	bad := models.ContactPreference("pigeon")
	_, err = svc.UpdateProfile(ctx, "user-2", ProfileUpdate{ContactPreference: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListByStatus(t *testing.T) {
	svc := newUserService(newTestEnv(t))

	blocked, err := svc.List(context.Background(), models.UserBlocked)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, "user-4", blocked[0].ID)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

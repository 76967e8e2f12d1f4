package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/aigen"
	"github.com/lovemypet/backend/internal/config"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/handlers"
	"github.com/lovemypet/backend/internal/markdown"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/seed"
	"github.com/lovemypet/backend/internal/services"
	"github.com/lovemypet/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminToken = "let-me-in"

type testServer struct {
	app      *fiber.App
	users    *services.UserService
	settings *services.SettingsService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{
		AppURL:      "https://lovemypet.test",
		CORSOrigins: "*",
		JWTSecret:   "route-test-secret",
		JWTExpiry:   time.Hour,
		AdminToken:  adminToken,
		AdminEmails: "Jane.Smith@example.com",
	}
	stores, err := storage.NewMemoryStores(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	require.NoError(t, seed.Load(ctx, stores, time.Now().UTC()))

	broker := notify.NewMemoryBroker()
	toasts := notify.NewToasts(time.Minute)

	settings := services.NewSettingsService(stores.Settings)
	users := services.NewUserService(stores.Users, settings, cfg.JWTSecret, cfg.JWTExpiry)
	pets := services.NewPetService(stores, settings, broker)
	stories := services.NewStoryService(stores, settings, broker, cfg.AppURL)
	chats := services.NewChatService(stores, broker, 0)

	h := Handlers{
		Health:        handlers.NewHealthHandler(nil, "memory"),
		Session:       handlers.NewSessionHandler(users, pets),
		Members:       handlers.NewMemberHandler(users, pets),
		Pets:          handlers.NewPetHandler(pets, stories),
		HealthRecords: handlers.NewHealthRecordHandler(services.NewHealthService(stores)),
		Stories:       handlers.NewStoryHandler(stories),
		Moderation:    handlers.NewModerationHandler(services.NewModerationService(stores, settings, broker)),
		Posts:         handlers.NewPostHandler(services.NewPostService(stores, settings)),
		Pins:          handlers.NewPinHandler(services.NewPinService(stores)),
		Feed:          handlers.NewFeedHandler(services.NewFeedService(stores)),
		Ads:           handlers.NewAdHandler(services.NewAdService(stores)),
		Policies:      handlers.NewPolicyHandler(services.NewPolicyService(stores, markdown.NewRenderer()), settings),
		Settings:      handlers.NewSettingsHandler(settings),
		Notifications: handlers.NewNotificationHandler(broker, toasts),
		Assist:        handlers.NewAssistHandler(aigen.NewAssistant(time.Second)),
		Chats:         handlers.NewChatHandler(chats),
	}

	app := fiber.New()
	Setup(app, cfg, stores.Users, settings, h)
	return &testServer{app: app, users: users, settings: settings}
}

func (s *testServer) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	u, err := s.users.Get(context.Background(), userID)
	require.NoError(t, err)
	token, err := s.users.IssueToken(u)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestHealthAndFeedArePublic(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "disabled", health.DB)
	assert.Equal(t, "memory", health.Store)

	code, body = s.do(t, http.MethodGet, "/api/feed", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"key":"alert-pet-2"`)
}

func TestLoginThenProfile(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/session", `{"email":"jane.smith@example.com"}`, nil)
	require.Equal(t, http.StatusOK, code)
	var session dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &session))
	require.NotEmpty(t, session.Token)

	code, body = s.do(t, http.MethodGet, "/api/me", "", bearer(session.Token))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"id":"user-2"`)

	code, _ = s.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/api/me", "", bearer("not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodPost, "/api/session", `{"email":"maria.garcia@example.com"}`, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestBlockedMemberLosesAccess(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "user-3")

	code, _ := s.do(t, http.MethodGet, "/api/me", "", bearer(token))
	require.Equal(t, http.StatusOK, code)

	_, err := s.users.RejectVetting(context.Background(), "user-3")
	require.NoError(t, err)

	code, _ = s.do(t, http.MethodGet, "/api/me", "", bearer(token))
	assert.Equal(t, http.StatusForbidden, code)
}

func TestAdminAccess(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodGet, "/api/admin/members", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/api/admin/members", "", bearer(s.tokenFor(t, "user-3")))
	assert.Equal(t, http.StatusForbidden, code)

	// Admin role
	code, _ = s.do(t, http.MethodGet, "/api/admin/members", "", bearer(s.tokenFor(t, "user-1")))
	assert.Equal(t, http.StatusOK, code)

	// Listed in ADMIN_EMAILS
	code, _ = s.do(t, http.MethodGet, "/api/admin/members", "", bearer(s.tokenFor(t, "user-2")))
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/admin/members", "", map[string]string{"X-Admin-Token": adminToken})
	assert.Equal(t, http.StatusOK, code)
}

func TestOwnershipIsEnforced(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPost, "/api/pets/pet-2/safe", "", bearer(s.tokenFor(t, "user-3")))
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodPost, "/api/pets/pet-2/safe", "", bearer(s.tokenFor(t, "user-2")))
	assert.Equal(t, http.StatusOK, code)

	// Already Safe
	code, _ = s.do(t, http.MethodPost, "/api/pets/pet-2/safe", "", bearer(s.tokenFor(t, "user-2")))
	assert.Equal(t, http.StatusConflict, code)
}

func TestFinderTestimonialLink(t *testing.T) {
	s := newTestServer(t)
	path := "/api/finder-testimonial/" + seed.DemoFinderToken

	code, body := s.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "Gizmo")

	payload := `{"finder_name":"Ellie","finder_testimonial":"He was hiding in my garden."}`
	code, _ = s.do(t, http.MethodPost, path, payload, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, path, payload, nil)
	assert.Equal(t, http.StatusGone, code)
}

func TestMaintenanceMode(t *testing.T) {
	s := newTestServer(t)
	next := s.settings.Current(context.Background())
	next.General.MaintenanceMode = true
	_, err := s.settings.Update(context.Background(), next)
	require.NoError(t, err)

	code, _ := s.do(t, http.MethodGet, "/api/feed", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, _ = s.do(t, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/feed", "", bearer(s.tokenFor(t, "user-1")))
	assert.Equal(t, http.StatusOK, code)

	// Admins by static token or ADMIN_EMAILS pass on non-admin routes too.
	code, _ = s.do(t, http.MethodGet, "/api/feed", "", map[string]string{"X-Admin-Token": adminToken})
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodGet, "/api/feed", "", bearer(s.tokenFor(t, "user-2")))
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/feed", "", bearer(s.tokenFor(t, "user-3")))
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestChatRoutes(t *testing.T) {
	s := newTestServer(t)
	jane := bearer(s.tokenFor(t, "user-2"))
	sam := bearer(s.tokenFor(t, "user-3"))

	code, _ := s.do(t, http.MethodGet, "/api/chats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := s.do(t, http.MethodPost, "/api/chats", `{"participant_id":"user-1"}`, jane)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"id":"chat-1"`)

	code, _ = s.do(t, http.MethodPost, "/api/chats/chat-1/messages", `{"text":"Found him?"}`, jane)
	assert.Equal(t, http.StatusCreated, code)
	code, _ = s.do(t, http.MethodPost, "/api/chats/chat-1/messages", `{"text":"hi"}`, sam)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(t, http.MethodGet, "/api/chats/chat-9/messages", "", jane)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodGet, "/api/chats/chat-1/messages", "", jane)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "Found him?")

	code, body = s.do(t, http.MethodGet, "/api/chats", "", jane)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"text":"Found him?"`)
}

func TestNotificationDismissNeedsMember(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodDelete, "/api/notifications/anything", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(t, http.MethodDelete, "/api/notifications/anything", "", bearer(s.tokenFor(t, "user-2")))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminPinValidation(t *testing.T) {
	s := newTestServer(t)
	admin := map[string]string{"X-Admin-Token": adminToken}

	code, _ := s.do(t, http.MethodPost, "/api/admin/pins",
		`{"item_id":"alert-pet-2","item_type":"alert","start_date":"2024-03-10","end_date":"2024-03-01"}`, admin)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/admin/pins",
		`{"item_id":"alert-pet-2","item_type":"alert","start_date":"2024-03-01","end_date":"2099-03-01"}`, admin)
	assert.Equal(t, http.StatusOK, code)

	code, body := s.do(t, http.MethodGet, "/api/feed", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Pinned []struct {
			Key string `json:"key"`
		} `json:"pinned"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Pinned, 1)
	assert.Equal(t, "alert-pet-2", page.Pinned[0].Key)
}

func TestPolicyPages(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/policies/privacy-policy", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"html"`)

	code, body = s.do(t, http.MethodGet, "/api/legal/privacy-policy", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "<title>Privacy Policy - LoveMyPet</title>")

	code, _ = s.do(t, http.MethodGet, "/api/policies/terms", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAssistFallsBackWithoutProviders(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/assist/keywords", `{"name":"Buddy","species":"Dog"}`, bearer(s.tokenFor(t, "user-2")))
	assert.Equal(t, http.StatusOK, code)
	var resp dto.AssistKeywordsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Empty(t, resp.Keywords)

	code, _ = s.do(t, http.MethodPost, "/api/assist/keywords", `{"name":"Buddy"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

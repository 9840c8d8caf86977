package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"doodleboard/internal/config"
	"doodleboard/internal/prompts"
	"doodleboard/internal/service"
	"doodleboard/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server with mocked repositories and no Redis.
// Individual tests swap in a real session store when they need one.
func newTestServer(t *testing.T) (*Server, *MockUserRepository, *MockDoodleRepository, *MockCommentRepository) {
	t.Helper()

	rotator, err := prompts.Load("")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	doodleRepo := new(MockDoodleRepository)
	commentRepo := new(MockCommentRepository)

	cfg := &config.Config{
		JWTSecret: "test_secret",
		UploadDir: t.TempDir(),
		Env:       "test",
	}

	s := &Server{
		config:      cfg,
		sessions:    session.NewStore(nil, time.Hour),
		userRepo:    userRepo,
		doodleRepo:  doodleRepo,
		commentRepo: commentRepo,
		rotator:     rotator,
	}
	s.doodleSvc = service.NewDoodleService(doodleRepo, cfg)
	s.engagement = service.NewEngagementService(doodleRepo, commentRepo)

	return s, userRepo, doodleRepo, commentRepo
}

// newTestRedis starts an in-memory Redis and returns a connected client.
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestAuthRequired_MissingCredentials(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Access denied")
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_BearerToken(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	app := fiber.New()

	var gotUserID uint
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		gotUserID = c.Locals("userID").(uint)
		return c.SendStatus(http.StatusOK)
	})

	token, err := s.generateToken(7, "drawfan")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(7), gotUserID)
}

func TestAuthRequired_SessionCookie(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	s.sessions = session.NewStore(newTestRedis(t), time.Hour)

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	token, err := s.generateToken(3, "inky")
	require.NoError(t, err)
	sid, err := s.sessions.Create(t.Context(), token)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired_StaleCookieFallsThrough(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	s.sessions = session.NewStore(newTestRedis(t), time.Hour)

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "no-such-session"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetPrompt(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	app := fiber.New()
	app.Get("/prompt", s.AuthRequired(), s.GetPrompt)

	resp := authedJSON(t, app, s, http.MethodGet, "/prompt", nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	prompt, ok := body["prompt"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, prompt)

	// Same day, same prompt.
	resp2 := authedJSON(t, app, s, http.MethodGet, "/prompt", nil)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, prompt, decodeJSON(t, resp2)["prompt"])
}

// Every read behind the gate stays behind it on the fully wired app:
// without credentials the prompt, the gallery and comment listings are
// all rejected, while login and static uploads stay open.
func TestRoutes_GatedReadsRejectAnonymous(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	app := s.NewApp()

	for _, path := range []string{"/prompt", "/doodles", "/doodle/1/comments", "/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "GET %s", path)
		assert.Contains(t, readBody(t, resp), "Access denied", "GET %s", path)
		_ = resp.Body.Close()
	}
}

func TestLivenessCheck(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

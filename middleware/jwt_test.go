package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"tix/config"
	"tix/database"
	"tix/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:          "test-secret",
		SessionTTLHours: 1,
	}

	_, err := database.ConnectTestDb()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/protected", AuthMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", c.Locals("steamId"))
	})
	return app
}

func issueSession(t *testing.T, steamID string, expiresAt time.Time, revoked bool) string {
	t.Helper()

	user := models.User{SteamID: steamID, Persona: "tester"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	session := models.Session{
		ID:        uuid.NewString(),
		SteamID:   steamID,
		ExpiresAt: expiresAt,
		Revoked:   revoked,
	}
	require.NoError(t, database.Database.Db.Create(&session).Error)

	token, err := GenerateSessionToken(&session, &user)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareAcceptsLiveSession(t *testing.T) {
	app := setupAuthTest(t)
	token := issueSession(t, "76561198012345678", time.Now().Add(time.Hour), false)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	app := setupAuthTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsExpiredSession(t *testing.T) {
	app := setupAuthTest(t)
	token := issueSession(t, "76561198012345678", time.Now().Add(-time.Minute), false)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsRevokedSession(t *testing.T) {
	app := setupAuthTest(t)
	token := issueSession(t, "76561198012345678", time.Now().Add(time.Hour), true)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsTamperedToken(t *testing.T) {
	app := setupAuthTest(t)
	token := issueSession(t, "76561198012345678", time.Now().Add(time.Hour), false)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

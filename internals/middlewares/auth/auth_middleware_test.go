package auth

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		AuthJWT(AuthJWTOpts{Secret: testSecret}),
		RequireAdmin(),
		func(c *fiber.Ctx) error { return c.SendString(Actor(c)) },
	)
	return app
}

func baseClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":          "6f1c5b0e-8a7e-4a57-9a55-1c1b4f0f7d11",
		"email":        "Ops@Example.com",
		"aud":          "authenticated",
		"exp":          time.Now().Add(time.Hour).Unix(),
		"app_metadata": map[string]any{"role": role},
	}
}

func doGet(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthJWT_AdminAllowed(t *testing.T) {
	code, body := doGet(t, newApp(), signToken(t, baseClaims("admin")))
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "ops@example.com", body)
}

func TestAuthJWT_NonAdminForbidden(t *testing.T) {
	code, _ := doGet(t, newApp(), signToken(t, baseClaims("student")))
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestAuthJWT_MissingOrBadToken(t *testing.T) {
	app := newApp()

	code, _ := doGet(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	expired := baseClaims("admin")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	code, _ = doGet(t, app, signToken(t, expired))
	assert.Equal(t, fiber.StatusUnauthorized, code)

	wrongAud := baseClaims("admin")
	wrongAud["aud"] = "anon"
	code, _ = doGet(t, app, signToken(t, wrongAud))
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

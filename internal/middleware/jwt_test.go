package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/me", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("user_role").(string)
		return c.JSON(fiber.Map{"userId": userID, "role": role})
	})
	return app
}

func TestJWTProtectedStoresStringSubjectAndRole(t *testing.T) {
	app := protectedApp()
	token := signToken(t, jwt.MapClaims{
		"sub":  "5b0c7f3e-8d64-4a4e-9a53-3f1f0d8c2a10",
		"role": "Admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, decodeBody(resp, &body))
	require.Equal(t, "5b0c7f3e-8d64-4a4e-9a53-3f1f0d8c2a10", body["userId"])
	require.Equal(t, "admin", body["role"])
}

func TestJWTProtectedRejectsMissingAndInvalidTokens(t *testing.T) {
	app := protectedApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	wrong := signToken(t, jwt.MapClaims{"sub": "someone"}, "other-secret")
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+wrong)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	expired := signToken(t, jwt.MapClaims{"sub": "someone", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExtractUserIDFallsBackToLegacyClaims(t *testing.T) {
	id := extractUserIDFromClaims(jwt.MapClaims{"user_id": float64(42)})
	require.NotNil(t, id)
	require.Equal(t, "42", *id)

	require.Nil(t, extractUserIDFromClaims(jwt.MapClaims{"sub": "  "}))
	require.Equal(t, "admin", extractUserRoleFromClaims(jwt.MapClaims{"roles": []interface{}{"", "ADMIN"}}))
}

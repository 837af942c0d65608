package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar-api/internal/middleware"
	"github.com/bienestar-app/bienestar-api/internal/models"
	"github.com/bienestar-app/bienestar-api/pkg/token"
)

func newProtectedApp(issuer *token.Issuer) *fiber.App {
	app := fiber.New()
	app.Get("/secret", middleware.JWTProtected(issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals(middleware.LocalUserID),
			"role":    c.Locals(middleware.LocalUserRole),
		})
	})
	return app
}

func TestJWTProtectedRejectsMissingHeader(t *testing.T) {
	issuer := token.NewIssuer(token.Config{Secret: "test-secret"})
	app := newProtectedApp(issuer)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsMalformedHeader(t *testing.T) {
	issuer := token.NewIssuer(token.Config{Secret: "test-secret"})
	app := newProtectedApp(issuer)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsForgedToken(t *testing.T) {
	issuer := token.NewIssuer(token.Config{Secret: "test-secret"})
	forger := token.NewIssuer(token.Config{Secret: "other-secret"})
	app := newProtectedApp(issuer)

	forged, err := forger.Issue(models.User{ID: 1, Email: "a@example.com", Role: models.RoleTeacher})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedBindsIdentity(t *testing.T) {
	issuer := token.NewIssuer(token.Config{Secret: "test-secret", Lifetime: time.Hour})
	app := newProtectedApp(issuer)

	signed, err := issuer.Issue(models.User{ID: 12, Email: "marta@example.com", Role: models.RoleTeacher, FullName: "Marta Ruiz"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

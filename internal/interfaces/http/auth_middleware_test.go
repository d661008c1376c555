package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/pkg/jwt"
)

const testSecret = "segredo-de-teste"

func newProtectedApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", AuthMiddleware(testSecret))
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"profile_id": GetProfileID(c),
			"role":       GetRole(c),
			"client_id":  GetClientID(c),
		})
	})
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestAuthMiddleware_SemToken(t *testing.T) {
	app := newProtectedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_HeaderMalformado(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoPreencheLocals(t *testing.T) {
	app := newProtectedApp()

	token, err := jwt.Generate(testSecret, "perfil-1", entity.RoleCliente, "cliente-1", "portal-pedidos", 30)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "perfil-1", body["profile_id"])
	assert.Equal(t, entity.RoleCliente, body["role"])
	assert.Equal(t, "cliente-1", body["client_id"])
}

func TestRequireRole(t *testing.T) {
	app := newProtectedApp()

	clienteToken, err := jwt.Generate(testSecret, "perfil-1", entity.RoleCliente, "cliente-1", "portal-pedidos", 30)
	require.NoError(t, err)
	adminToken, err := jwt.Generate(testSecret, "perfil-2", entity.RoleAdmin, "", "portal-pedidos", 30)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+clienteToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

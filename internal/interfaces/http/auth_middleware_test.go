package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	apphttp "github.com/vipcleaners/pos-api/internal/interfaces/http"
	"github.com/vipcleaners/pos-api/pkg/jwt"
)

const (
	testJWTSecret = "clave-de-prueba-middleware"
	testUserID    = "0b7c1a52-3f7e-4d55-9c3e-5f2f0f1d9a10"
)

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.Sign(testJWTSecret, "vip-test", jwt.Identity{UserID: testUserID, Role: role}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

// rolesApp replica la estructura del router: /staff para admin y empleado, /admin solo admin.
func rolesApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", apphttp.AuthMiddleware(testJWTSecret))
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	}
	protected.Get("/staff", apphttp.RequireRole("admin", "empleado"), ok)
	protected.Get("/admin", apphttp.RequireRole("admin"), ok)
	return app
}

func TestAuthMiddleware_Roles(t *testing.T) {
	expired, err := jwt.Sign(testJWTSecret, "vip-test", jwt.Identity{UserID: testUserID, Role: "admin"}, -time.Minute)
	require.NoError(t, err)
	foreign, err := jwt.Sign("otra-clave", "vip-test", jwt.Identity{UserID: testUserID, Role: "admin"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		code   string
	}{
		{"admin en ruta admin", "/admin", tokenForRole(t, "admin"), http.StatusOK, ""},
		{"empleado en ruta de personal", "/staff", tokenForRole(t, "empleado"), http.StatusOK, ""},
		{"esquema en minúsculas", "/staff", "bearer " + tokenForRole(t, "empleado")[7:], http.StatusOK, ""},
		{"empleado en ruta admin", "/admin", tokenForRole(t, "empleado"), http.StatusForbidden, "FORBIDDEN"},
		{"rol desconocido", "/staff", tokenForRole(t, "cliente"), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", "/staff", tokenForRole(t, ""), http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", "/staff", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"sin esquema", "/staff", "abc.def.ghi", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"bearer vacío", "/staff", "Bearer   ", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expirado", "/staff", "Bearer " + expired, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firmado con otra clave", "/admin", "Bearer " + foreign, http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	app := rolesApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.code != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.code, body.Code)
			}
		})
	}
}

func TestAuthMiddleware_DejaIdentidadEnLocals(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", tokenForRole(t, "empleado"))
	resp, err := rolesApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user"])
	assert.Equal(t, "empleado", body["role"])
}

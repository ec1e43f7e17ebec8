package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"inventara/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rahasia-test"

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(testSecret, time.Hour, "USR009", "Tester", "t@inventara.local", role)
	require.NoError(t, err)
	return tok
}

func TestAuthorizer_Policy(t *testing.T) {
	a, err := NewAuthorizer()
	require.NoError(t, err)

	cases := []struct {
		role, obj, act string
		want           bool
	}{
		{"admin", ObjUser, ActRead, true},
		{"headOffice", ObjLoan, "read_all", false},
		{"admin", ObjMaster, ActWrite, true},
		{"headOffice", ObjLoan, ActApprove, true},
		{"headOffice", ObjLoan, ActOwn, true},
		{"headOffice", ObjMaster, ActRead, true},
		{"headOffice", ObjMaster, ActWrite, false},
		{"headOffice", ObjLog, ActRead, false},
		{"user", ObjLoan, ActOwn, true},
		{"user", ObjLoan, ActApprove, false},
		{"user", ObjLaporan, ActExport, false},
		{"", ObjMaster, ActRead, false},
	}
	for _, tc := range cases {
		got, err := a.Allow(tc.role, tc.obj, tc.act)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s %s", tc.role, tc.obj, tc.act)
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	a, err := NewAuthorizer()
	require.NoError(t, err)

	app := fiber.New()
	ok := func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalUserID).(string))
	}
	app.Get("/master", JWTMiddleware(testSecret), a.Require(ObjMaster, ActRead), ok)
	app.Post("/master", JWTMiddleware(testSecret), a.Require(ObjMaster, ActWrite), ok)
	app.Get("/export", JWTMiddlewareForExport(testSecret), a.Require(ObjLaporan, ActExport), ok)
	return app
}

func TestJWTMiddleware(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/master", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/master", nil)
	req.Header.Set("Authorization", "Bearer bukan-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/master", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "user"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "USR009", string(body))

	// query token hanya berlaku di endpoint export
	req = httptest.NewRequest("GET", "/master?token="+token(t, "user"), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequire_Forbidden(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/master", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "user"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWTMiddlewareForExport_QueryToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/export?token="+token(t, "headOffice"), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/export?token="+token(t, "user"), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

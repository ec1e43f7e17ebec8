package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventara/config"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppEnv:            "test",
		JWTSecret:         "rahasia-test",
		JWTTTL:            time.Hour,
		LoginRateLimit:    2,
		UploadDir:         t.TempDir(),
		ReconcileInterval: time.Hour,
		PendingTimeout:    48 * time.Hour,
	}
}

func TestNewApp_Wiring(t *testing.T) {
	c := testConfig(t)
	app, err := newApp(c, buildComponents(c))
	require.NoError(t, err)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/tidak-ada", http.StatusNotFound},
		{http.MethodGet, "/users/me", http.StatusUnauthorized},
		{http.MethodGet, "/tempats", http.StatusUnauthorized},
		{http.MethodGet, "/laporan/export/excel", http.StatusUnauthorized},
		{http.MethodGet, "/photo/produk/a.png", http.StatusNotFound},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestNewApp_LoginRateLimit(t *testing.T) {
	c := testConfig(t)
	app, err := newApp(c, buildComponents(c))
	require.NoError(t, err)

	login := func() int {
		req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode
	}

	// body kosong gagal validasi sebelum menyentuh database
	assert.Equal(t, http.StatusUnprocessableEntity, login())
	assert.Equal(t, http.StatusUnprocessableEntity, login())
	assert.Equal(t, http.StatusTooManyRequests, login())
}

func TestErrorHandler(t *testing.T) {
	c := testConfig(t)
	app, err := newApp(c, buildComponents(c))
	require.NoError(t, err)

	// method yang tidak didaftarkan tetap jatuh ke handler 404
	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taamulcredit/formrelay/internal/config"
	"github.com/taamulcredit/formrelay/internal/server"
)

func newTestServer(t *testing.T, allowedOrigin string) *server.Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{AllowedOrigin: allowedOrigin},
	}
	s, err := server.New(cfg, nil, nil)
	require.NoError(t, err)
	return s
}

func TestComputeAllowOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed string
		want    string
	}{
		{"wildcard without origin", "", "*", "*"},
		{"wildcard with origin", "https://evil.com", "*", "*"},
		{"exact match", "https://taamulcredit.com", "https://taamulcredit.com", "https://taamulcredit.com"},
		{"mismatch", "https://evil.com", "https://taamulcredit.com", ""},
		{"missing origin", "", "https://taamulcredit.com", ""},
		{"trailing slash is not a match", "https://taamulcredit.com/", "https://taamulcredit.com", ""},
		{"scheme differs", "http://taamulcredit.com", "https://taamulcredit.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeAllowOrigin(tt.origin, tt.allowed))
		})
	}
}

func serveCORS(t *testing.T, allowed, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	cm := NewCORSMiddleware(newTestServer(t, allowed))

	e := echo.New()
	g := e.Group("", cm.AllowOrigin())
	g.POST("/api/contact", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	})
	g.OPTIONS("/api/contact", cm.Preflight)

	req := httptest.NewRequest(method, "/api/contact", nil)
	if origin != "" {
		req.Header.Set(echo.HeaderOrigin, origin)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPreflight(t *testing.T) {
	rec := serveCORS(t, "https://taamulcredit.com", http.MethodOptions, "https://taamulcredit.com")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "https://taamulcredit.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Content-Type", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
	assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
	assert.Equal(t, echo.HeaderOrigin, rec.Header().Get(echo.HeaderVary))
}

func TestPreflight_MismatchedOriginGetsEmptyGrant(t *testing.T) {
	for _, origin := range []string{"https://evil.com", "https://sub.taamulcredit.com", ""} {
		rec := serveCORS(t, "https://taamulcredit.com", http.MethodOptions, origin)

		assert.Equal(t, http.StatusNoContent, rec.Code, origin)
		assert.Empty(t, rec.Body.String())

		values, present := rec.Header()[echo.HeaderAccessControlAllowOrigin]
		require.True(t, present, origin)
		assert.Equal(t, []string{""}, values)
		assert.Equal(t, "POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
		assert.Equal(t, "Content-Type", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
		assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
	}
}

func TestAllowOrigin_MismatchedPost(t *testing.T) {
	rec := serveCORS(t, "https://taamulcredit.com", http.MethodPost, "https://evil.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	values, present := rec.Header()[echo.HeaderAccessControlAllowOrigin]
	require.True(t, present)
	assert.Equal(t, []string{""}, values)
	assert.Contains(t, rec.Header().Values(echo.HeaderVary), echo.HeaderOrigin)
}

func TestAllowOrigin_Wildcard(t *testing.T) {
	for _, origin := range []string{"https://anything.example", ""} {
		rec := serveCORS(t, "*", http.MethodPost, origin)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin), origin)
	}
}

func TestPreflight_Wildcard(t *testing.T) {
	rec := serveCORS(t, "*", http.MethodOptions, "https://anything.example")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
}

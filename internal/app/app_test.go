package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taamulcredit/formrelay/internal/config"
)

type upstreamStub struct {
	*httptest.Server
	calls    atomic.Int32
	received atomic.Value
}

// newUpstream answers every POST with answer and records the last payload.
func newUpstream(t *testing.T, answer string) *upstreamStub {
	t.Helper()

	stub := &upstreamStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)

		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		stub.received.Store(payload)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(answer))
	}))
	t.Cleanup(stub.Close)
	return stub
}

func (u *upstreamStub) payload() map[string]any {
	p, _ := u.received.Load().(map[string]any)
	return p
}

func newTestHandler(t *testing.T, scriptURL, allowedOrigin string) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:          "0",
			ReadTimeout:   10,
			WriteTimeout:  10,
			IdleTimeout:   60,
			AllowedOrigin: allowedOrigin,
		},
		Upstream: config.UpstreamConfig{
			ScriptURL: scriptURL,
			Timeout:   2 * time.Second,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	srv, err := New(cfg, nil, nil)
	require.NoError(t, err)
	return srv.Handler()
}

func do(h http.Handler, method, path, body, origin string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if origin != "" {
		req.Header.Set(echo.HeaderOrigin, origin)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const validContact = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"phone": "+971 50 123 4567",
	"subject": "Financing",
	"message": "=SUM(A1:A9)"
}`

func TestContact_Success(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "*")

	rec := do(h, http.MethodPost, "/api/contact", validContact, "https://site.example")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	assert.EqualValues(t, 1, upstream.calls.Load())
	assert.Equal(t, map[string]any{
		"type":    "contact",
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "'+971 50 123 4567",
		"company": "",
		"subject": "Financing",
		"message": "'=SUM(A1:A9)",
	}, upstream.payload())
}

func TestContact_HoneypotSkipsUpstream(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "*")

	body := `{"name":"Bot","email":"bad","phone":"1","subject":"","message":"","website":"http://spam.example"}`
	rec := do(h, http.MethodPost, "/api/contact", body, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.EqualValues(t, 0, upstream.calls.Load())
}

func TestContact_ValidationErrors(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "*")

	rec := do(h, http.MethodPost, "/api/contact", `{}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"errors": {
			"name": "Name is required",
			"email": "Valid email is required",
			"phone": "Valid phone number is required",
			"subject": "Subject is required",
			"message": "Message is required"
		}
	}`, rec.Body.String())
	assert.EqualValues(t, 0, upstream.calls.Load())
}

func TestContact_UpstreamRejected(t *testing.T) {
	upstream := newUpstream(t, `{"success":false}`)
	h := newTestHandler(t, upstream.URL, "*")

	rec := do(h, http.MethodPost, "/api/contact", validContact, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to save submission"}`, rec.Body.String())
}

func TestContact_UpstreamGarbage(t *testing.T) {
	upstream := newUpstream(t, `<html>oops</html>`)
	h := newTestHandler(t, upstream.URL, "*")

	rec := do(h, http.MethodPost, "/api/contact", validContact, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
}

func TestContact_MalformedJSON(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "*")

	rec := do(h, http.MethodPost, "/api/contact", `{"name":`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
	assert.EqualValues(t, 0, upstream.calls.Load())
}

func TestNewsletter(t *testing.T) {
	t.Run("missing email", func(t *testing.T) {
		upstream := newUpstream(t, `{"success":true}`)
		h := newTestHandler(t, upstream.URL, "*")

		rec := do(h, http.MethodPost, "/api/newsletter", `{}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"errors":{"email":"Valid email is required"}}`, rec.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		upstream := newUpstream(t, `{"success":true}`)
		h := newTestHandler(t, upstream.URL, "*")

		rec := do(h, http.MethodPost, "/api/newsletter", `{"email":"  x@y.io "}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"type": "newsletter", "email": "x@y.io"}, upstream.payload())
	})

	t.Run("rejected", func(t *testing.T) {
		upstream := newUpstream(t, `{"success":false}`)
		h := newTestHandler(t, upstream.URL, "*")

		rec := do(h, http.MethodPost, "/api/newsletter", `{"email":"x@y.io"}`, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Failed to subscribe"}`, rec.Body.String())
	})
}

func TestCallback(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		upstream := newUpstream(t, `{"success":true}`)
		h := newTestHandler(t, upstream.URL, "*")

		rec := do(h, http.MethodPost, "/api/callback", `{"name":"Ali","phone":"0501234567","preferredTime":"evening"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{
			"type":          "callback",
			"name":          "Ali",
			"phone":         "0501234567",
			"preferredTime": "evening",
		}, upstream.payload())
	})

	t.Run("bad preferred time", func(t *testing.T) {
		upstream := newUpstream(t, `{"success":true}`)
		h := newTestHandler(t, upstream.URL, "*")

		rec := do(h, http.MethodPost, "/api/callback", `{"name":"Ali","phone":"0501234567","preferredTime":"night"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"errors":{"preferredTime":"Preferred time must be morning, afternoon or evening"}}`, rec.Body.String())
	})

	t.Run("rejected", func(t *testing.T) {
		upstream := newUpstream(t, `{"success":false}`)
		h := newTestHandler(t, upstream.URL, "*")

		rec := do(h, http.MethodPost, "/api/callback", `{"name":"Ali","phone":"0501234567","preferredTime":"morning"}`, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Failed to submit callback request"}`, rec.Body.String())
	})
}

func TestPreflight_MismatchedOrigin(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "https://taamulcredit.com")

	rec := do(h, http.MethodOptions, "/api/contact", "", "https://evil.com")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	values, present := rec.Header()[echo.HeaderAccessControlAllowOrigin]
	require.True(t, present)
	assert.Equal(t, []string{""}, values)
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.EqualValues(t, 0, upstream.calls.Load())
}

func TestCORS_ExactOriginOnErrors(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "https://taamulcredit.com")

	rec := do(h, http.MethodPost, "/api/newsletter", `{}`, "https://taamulcredit.com")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "https://taamulcredit.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestUnknownRouteAndMethod(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "*")

	rec := do(h, http.MethodGet, "/api/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Not Found"}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/status", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Method Not Allowed"}`, rec.Body.String())
}

func TestStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := newTestHandler(t, "https://script.google.com/macros/s/abc/exec", "*")

		rec := do(h, http.MethodGet, "/status", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "test", body["environment"])
		assert.Equal(t, map[string]any{
			"upstream": map[string]any{"status": "healthy", "host": "script.google.com"},
		}, body["checks"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		h := newTestHandler(t, "not a url", "*")

		rec := do(h, http.MethodGet, "/status", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unhealthy"`)
	})
}

func TestDocs(t *testing.T) {
	h := newTestHandler(t, "https://script.example/exec", "*")

	rec := do(h, http.MethodGet, "/docs", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec = do(h, http.MethodGet, "/static/openapi.json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/callback")
}

func TestForms_FieldNamesAreExact(t *testing.T) {
	t.Run("uppercase email is absent", func(t *testing.T) {
		upstream := newUpstream(t, `{"success":true}`)
		h := newTestHandler(t, upstream.URL, "*")

		rec := do(h, http.MethodPost, "/api/newsletter", `{"EMAIL":"x@y.com"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"errors":{"email":"Valid email is required"}}`, rec.Body.String())
		assert.EqualValues(t, 0, upstream.calls.Load())
	})

	t.Run("uppercase honeypot is ignored", func(t *testing.T) {
		upstream := newUpstream(t, `{"success":true}`)
		h := newTestHandler(t, upstream.URL, "*")

		body := strings.Replace(validContact, `"name"`, `"WEBSITE": "x", "name"`, 1)
		rec := do(h, http.MethodPost, "/api/contact", body, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 1, upstream.calls.Load())
	})
}

func TestForms_TrailingDataIsMalformed(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "*")

	for _, body := range []string{`{"email":"x@y.com"} trailing`, `{"email":"x@y.com"}{}`} {
		rec := do(h, http.MethodPost, "/api/newsletter", body, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code, body)
		assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
	}
	assert.EqualValues(t, 0, upstream.calls.Load())
}

func TestForms_NonObjectBodiesFailValidation(t *testing.T) {
	upstream := newUpstream(t, `{"success":true}`)
	h := newTestHandler(t, upstream.URL, "*")

	for _, body := range []string{`[]`, `"x"`, `5`, `null`} {
		rec := do(h, http.MethodPost, "/api/newsletter", body, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"success":false,"errors":{"email":"Valid email is required"}}`, rec.Body.String())
	}
	assert.EqualValues(t, 0, upstream.calls.Load())
}

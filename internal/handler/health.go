package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taamulcredit/formrelay/internal/middleware"
	"github.com/taamulcredit/formrelay/internal/server"
)

// HealthHandler exposes a "system" endpoint for uptime monitors and load
// balancers.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns the service status and its upstream check.
//
// The upstream is not called; a relay must never create a spreadsheet row
// from a monitor. The check only verifies the configured script URL is an
// absolute http(s) URL.
//
// It returns:
//   - 200 OK if all checks pass
//   - 503 Service Unavailable otherwise
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
	}

	upstream, err := checkUpstreamURL(h.server.Config.Upstream.ScriptURL)
	response["checks"] = map[string]interface{}{
		"upstream": upstream,
	}

	if err != nil {
		response["status"] = "unhealthy"

		logger.Warn().
			Err(err).
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		if nrApp := h.server.LoggerService.GetApplication(); nrApp != nil {
			nrApp.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":    "upstream",
				"operation":     "health_check",
				"error_type":    "upstream_misconfigured",
				"error_message": err.Error(),
			})
		}

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func checkUpstreamURL(raw string) (map[string]interface{}, error) {
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme != "http" && u.Scheme != "https" || u.Host == "") {
		err = fmt.Errorf("upstream URL %q is not an absolute http(s) URL", raw)
	}

	if err != nil {
		return map[string]interface{}{"status": "unhealthy"}, err
	}

	return map[string]interface{}{
		"status": "healthy",
		"host":   u.Host,
	}, nil
}

package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"universal-scraper/internal/session"
	"universal-scraper/pkg/models"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	requestLogger(c).Debug("Health check requested")

	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	})
}

// ReadinessHandler reports ready only when the LLM provider and the session store are usable
func ReadinessHandler(llmStatus LLMStatus, store session.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestLogger(c).Debug("Readiness check requested")

		checks := map[string]string{"api": "ok"}
		ready := true

		if llmStatus.IsHealthy() {
			checks["llm"] = "ok"
		} else {
			checks["llm"] = llmStatus.GetProviderName() + " unavailable"
			ready = false
		}

		if err := store.Health(c.Request().Context()); err != nil {
			checks["session_store"] = store.Name() + ": " + err.Error()
			ready = false
		} else {
			checks["session_store"] = "ok"
		}

		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   Version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	requestLogger(c).Debug("Liveness check requested")

	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
	})
}

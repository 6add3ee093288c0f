package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

// Context keys set by the middleware in this package
const (
	RequestIDKey = "request_id"
	SessionIDKey = "session_id"
)

const maxBodyBytes = 1024 * 1024

// RequestID tags every request with an id, echoed in X-Request-ID, and
// rejects oversized POST bodies
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			if c.Request().Method == http.MethodPost && c.Request().ContentLength > maxBodyBytes {
				return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
					Error:     "request_too_large",
					Message:   "Request body too large",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}

			return next(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestID
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

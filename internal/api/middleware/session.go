package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"universal-scraper/pkg/utils"
)

// Session makes sure every visitor carries a session cookie; the id keys the
// stored extraction result
func Session(cookieName string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(cookieName); err == nil && utils.IsValidSessionID(cookie.Value) {
				c.Set(SessionIDKey, cookie.Value)
				return next(c)
			}

			sessionID := utils.GenerateSessionID()
			cookie := &http.Cookie{
				Name:     cookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			if ttl > 0 {
				cookie.MaxAge = int(ttl.Seconds())
			}
			c.SetCookie(cookie)
			c.Set(SessionIDKey, sessionID)

			return next(c)
		}
	}
}

// GetSessionID returns the id assigned by Session
func GetSessionID(c echo.Context) string {
	if id, ok := c.Get(SessionIDKey).(string); ok {
		return id
	}
	return ""
}

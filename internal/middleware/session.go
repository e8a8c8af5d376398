package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
	"stockconsole/internal/services"
	"stockconsole/internal/upstream"
)

// sessionID reads the gateway session id from the X-Session-ID header or a
// "Bearer <id>" Authorization header.
func sessionID(c echo.Context) string {
	if id := c.Request().Header.Get(common.SessionHeader); id != "" {
		return id
	}
	authHeader := c.Request().Header.Get("Authorization")
	if id := strings.TrimPrefix(authHeader, "Bearer "); id != authHeader {
		return strings.TrimSpace(id)
	}
	return ""
}

// SessionForgetter releases per-session state held outside the session
// store, such as the caller's current report.
type SessionForgetter interface {
	Forget(sessionID string)
}

// SessionMiddleware resolves the caller's session and stores it on the
// request context. When a handler fails because the upstream rejected the
// session token, the session is dropped so the client must log in again.
// forget may be nil; otherwise it is told about every session found expired
// or dropped.
func SessionMiddleware(authSvc services.AuthService, forget SessionForgetter) echo.MiddlewareFunc {
	release := func(id string) {
		if forget != nil {
			forget.Forget(id)
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := sessionID(c)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing session")
			}

			sess, err := authSvc.GetSession(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, services.ErrSessionNotFound) {
					release(id)
					return echo.NewHTTPError(http.StatusUnauthorized, "Session expired")
				}
				log.Printf("WARN: session lookup failed: %v", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Session store unavailable")
			}

			c.SetRequest(c.Request().WithContext(common.WithSession(c.Request().Context(), sess)))

			err = next(c)
			if err != nil && errors.Is(err, upstream.ErrUnauthorized) {
				if logoutErr := authSvc.Logout(c.Request().Context(), sess.ID); logoutErr != nil {
					log.Printf("WARN: failed to drop rejected session %s: %v", sess.ID, logoutErr)
				}
				release(sess.ID)
				return echo.NewHTTPError(http.StatusUnauthorized, "Upstream session expired").SetInternal(err)
			}
			return err
		}
	}
}

package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
)

// AuditRequest logs state-changing requests with the acting user and the
// outcome. Reads are left to the request logger.
func AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			actor := "anonymous"
			if sess, ok := common.GetSessionFromContext(c.Request().Context()); ok {
				actor = sess.User.Email + " (" + sess.User.Role + ")"
			}
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}

			log.Printf("AUDIT: %s %s by %s -> %d in %s", method, c.Path(), actor, status, time.Since(start).Round(time.Millisecond))
			return err
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
)

// RequireRole admits callers whose session user holds one of roles. It must
// run after SessionMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := common.GetSessionFromContext(c.Request().Context())
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			if !sess.User.HasRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

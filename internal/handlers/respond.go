package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
	"stockconsole/internal/models"
	"stockconsole/internal/services"
	"stockconsole/internal/upstream"
)

// currentSession returns the session SessionMiddleware attached.
func currentSession(c echo.Context) (models.Session, error) {
	sess, ok := common.GetSessionFromContext(c.Request().Context())
	if !ok {
		return models.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return *sess, nil
}

// serviceError turns a service failure into a response. An upstream
// authorization failure is returned as an error wrapping its cause so the
// session middleware can drop the session.
func serviceError(c echo.Context, err error, action string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return common.SendValidationError(c, verr.Field, verr.Message)
	case errors.Is(err, upstream.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "Upstream session expired").SetInternal(err)
	case errors.Is(err, services.ErrWarehouseNotFound):
		return common.SendNotFoundError(c, "Warehouse")
	case errors.Is(err, services.ErrExportUnavailable):
		return c.JSON(http.StatusServiceUnavailable, common.CreateErrorResponse("EXPORT_UNAVAILABLE", err.Error(), nil))
	}

	log.Printf("WARN: failed to %s: %v", action, err)
	return common.SendUpstreamError(c, "Failed to "+action)
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/services"
)

// UserHandlers handles user-related HTTP requests
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// ListUsers returns the upstream user directory
func (h *UserHandlers) ListUsers(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context(), sess)
	if err != nil {
		return serviceError(c, err, "list users")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": users,
		"total": len(users),
	})
}

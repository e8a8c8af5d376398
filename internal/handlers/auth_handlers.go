package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
	"stockconsole/internal/models"
	"stockconsole/internal/services"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService   services.AuthService
	reportService services.ReportService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, reportService services.ReportService) *AuthHandlers {
	return &AuthHandlers{
		authService:   authService,
		reportService: reportService,
	}
}

// Login exchanges upstream credentials for a gateway session
func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if strings.TrimSpace(req.Email) == "" {
		return common.SendValidationError(c, "email", "email is required")
	}
	if req.Password == "" {
		return common.SendValidationError(c, "password", "password is required")
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("INVALID_CREDENTIALS", "Invalid email or password", nil))
		case errors.Is(err, services.ErrTooManyAttempts):
			return c.JSON(http.StatusTooManyRequests, common.CreateErrorResponse("RATE_LIMITED", "Too many login attempts, try again later", nil))
		}
		log.Printf("WARN: login failed: %v", err)
		return common.SendUpstreamError(c, "Login is unavailable")
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		SessionID: sess.ID,
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Logout drops the caller's session
func (h *AuthHandlers) Logout(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), sess.ID); err != nil {
		log.Printf("WARN: logout failed for session %s: %v", sess.ID, err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Failed to log out")
	}
	h.reportService.Forget(sess.ID)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the signed-in user
func (h *AuthHandlers) Me(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":       sess.User,
		"expires_at": sess.ExpiresAt,
	})
}

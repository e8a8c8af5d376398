package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/caching"
	"stockconsole/internal/services"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	redisSvc caching.CacheService
	minioSvc services.MinioService
	bucket   string
	started  time.Time
	version  string
}

// NewHealthHandlers creates a new health handlers instance. minioSvc may be
// nil when report export is disabled.
func NewHealthHandlers(redisSvc caching.CacheService, minioSvc services.MinioService, bucket, version string) *HealthHandlers {
	return &HealthHandlers{
		redisSvc: redisSvc,
		minioSvc: minioSvc,
		bucket:   bucket,
		started:  time.Now(),
		version:  version,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Services   map[string]string `json:"services"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version"`
	Goroutines int               `json:"goroutines"`
}

// HealthCheck reports the state of the session store and export storage
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Services:   make(map[string]string),
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Version:    h.version,
		Goroutines: runtime.NumGoroutine(),
	}

	if err := h.checkRedis(ctx); err != nil {
		health.Services["redis"] = "unhealthy: " + err.Error()
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	switch err := h.checkMinIO(ctx); {
	case h.minioSvc == nil:
		health.Services["storage"] = "disabled"
	case err != nil:
		health.Services["storage"] = "unhealthy: " + err.Error()
		health.Status = "degraded"
	default:
		health.Services["storage"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkRedis(ctx context.Context) error {
	return h.redisSvc.Ping(ctx)
}

func (h *HealthHandlers) checkMinIO(ctx context.Context) error {
	if h.minioSvc == nil {
		return nil
	}
	found, err := h.minioSvc.BucketExists(ctx, h.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %s does not exist yet", h.bucket)
	}
	return nil
}

// ReadinessCheck determines if the application is ready to serve traffic.
// Sessions live in Redis, so Redis is the only hard dependency.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checkRedis(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Session store unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stockconsole/internal/caching"
	"stockconsole/internal/common"
	"stockconsole/internal/config"
	"stockconsole/internal/handlers"
	"stockconsole/internal/jobs"
	"stockconsole/internal/jobs/background"
	"stockconsole/internal/metrics"
	"stockconsole/internal/middleware"
	"stockconsole/internal/models"
	"stockconsole/internal/services"
	"stockconsole/internal/upstream"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	m := metrics.New()
	client := upstream.NewClient(cfg.Upstream, m)

	// Redis holds sessions and short-lived upstream payloads
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// MinIO is optional; without it CSV export is reported as unavailable
	var minioSvc services.MinioService
	if cfg.Storage.Endpoint != "" {
		svc, err := services.NewMinioService(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
		if err != nil {
			log.Printf("WARN: object storage disabled: %v", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := svc.EnsureBucketExists(ctx, cfg.Storage.Bucket); err != nil {
				log.Printf("WARN: failed to ensure bucket %s: %v", cfg.Storage.Bucket, err)
			}
			cancel()
			minioSvc = svc
		}
	}

	// Upstream tokens are verified against the JWKS when one is configured
	var verify jwt.Keyfunc
	if cfg.Upstream.JWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.Upstream.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				log.Printf("WARN: failed to refresh JWKS: %v", err)
			},
		})
		if err != nil {
			log.Fatalf("Failed to load JWKS from %s: %v", cfg.Upstream.JWKSURL, err)
		}
		defer jwks.EndBackground()
		verify = jwks.Keyfunc
	}

	// Services
	authSvc := services.NewAuthService(client, cacheSvc, verify)
	snapshotSvc := services.NewSnapshotService(client, cacheSvc, cfg.Upstream.CacheTTL())
	reportSvc := services.NewReportService(snapshotSvc, nil, minioSvc, services.ExportConfig{
		Bucket:    cfg.Storage.Bucket,
		URLExpiry: cfg.Storage.URLExpiry(),
	}, m)
	inventorySvc := services.NewInventoryService(client, snapshotSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(cfg.Jobs, authSvc,
		jobs.NewSnapshotRefreshService(snapshotSvc),
		jobs.NewInventoryAlertService(snapshotSvc, reportSvc),
		reportSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}

	// Handlers
	healthHandlers := handlers.NewHealthHandlers(cacheSvc, minioSvc, cfg.Storage.Bucket, version)
	authHandlers := handlers.NewAuthHandlers(authSvc, reportSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc)
	productHandlers := handlers.NewProductHandlers(services.NewProductService(snapshotSvc))
	supplierHandlers := handlers.NewSupplierHandlers(services.NewSupplierService(snapshotSvc))
	warehouseHandlers := handlers.NewWarehouseHandlers(services.NewWarehouseService(snapshotSvc))
	userHandlers := handlers.NewUserHandlers(services.NewUserService(snapshotSvc))
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	jobHandlers := handlers.NewJobHandlers(scheduler)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, common.SessionHeader},
	}))
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.AuditRequest())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/ready", healthHandlers.ReadinessCheck)
	e.GET("/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	versionMiddleware := middleware.NewVersionMiddleware()
	v1 := versionMiddleware.VersionRoute(e, versionMiddleware.GetCurrentVersion())
	v1.POST("/auth/login", authHandlers.Login)

	// Everything else requires a session
	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(authSvc, reportSvc))

	protected.POST("/auth/logout", authHandlers.Logout)
	protected.GET("/me", authHandlers.Me)

	// Inventory is open to every role
	protected.GET("/inventory", inventoryHandlers.ListInventory)
	protected.GET("/inventory/dashboard", inventoryHandlers.GetDashboard)
	protected.GET("/inventory/history", inventoryHandlers.GetHistory)
	protected.POST("/inventory/adjust", inventoryHandlers.AdjustStock)

	managers := protected.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleManager))
	managers.GET("/products", productHandlers.ListProducts)
	managers.GET("/suppliers", supplierHandlers.ListSuppliers)
	managers.GET("/reports/current", reportHandlers.GetCurrentReport)
	managers.GET("/reports/warehouses/:id", reportHandlers.GetWarehouseReport)
	managers.GET("/reports/warehouses/:id/csv", reportHandlers.DownloadCSV)
	managers.POST("/reports/warehouses/:id/export", reportHandlers.ExportReport)

	admins := protected.Group("", middleware.RequireRole(models.RoleAdmin))
	admins.GET("/warehouses", warehouseHandlers.ListWarehouses)
	admins.GET("/warehouses/:id", warehouseHandlers.GetWarehouse)
	admins.GET("/users", userHandlers.ListUsers)
	admins.GET("/jobs", jobHandlers.ListJobs)
	admins.POST("/jobs/:name/run", jobHandlers.RunJob)

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("stockconsole v%s starting on port %d, upstream %s", version, cfg.Server.Port, cfg.Upstream.BaseURL)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := scheduler.Stop(); err != nil {
		log.Printf("WARN: failed to stop job scheduler: %v", err)
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: server shutdown: %v", err)
	}
}

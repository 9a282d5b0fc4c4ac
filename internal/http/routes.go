package http

import (
	"taskboard/internal/config"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/storage"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, files *storage.FileStore, hub *ws.Hub, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, files, hub)
	healthHandler := handlers.NewHealthHandler(db, files.Dir(), version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg)

	// Legacy /api routes kept for backward compatibility
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, cfg)

	// Live notification channel
	r.GET("/ws", h.WS())

	// Uploaded attachment files
	r.Static("/uploads", files.Dir())
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Auth
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)
	api.GET("/auth/users", middleware.JWT(), h.ListUsers)

	// User profile
	api.GET("/me", middleware.JWT(), h.Me)

	// Tasks
	tasks := api.Group("/tasks")
	tasks.Use(middleware.JWT())
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/shared", h.SharedTasks)
		tasks.GET("/notifications", h.Notifications)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.PUT("/:id/share", h.ShareTask)

		uploadRL := middleware.UploadRateLimit(cfg.UploadRateLimit, cfg.UploadRateWindow)
		tasks.POST("/:id/attachments", uploadRL, h.UploadAttachments)
		tasks.DELETE("/:id/attachments/:attachmentId", h.DeleteAttachment)
	}

	// Analytics
	analytics := api.Group("/analytics")
	analytics.Use(middleware.JWT())
	{
		analytics.GET("/overview", h.AnalyticsOverview)
		analytics.GET("/trends", h.AnalyticsTrends)
	}
}

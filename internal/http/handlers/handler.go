package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/storage"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB               *pgxpool.Pool
	UserRepo         *repository.UserRepository
	NotificationRepo *repository.NotificationRepository
	AnalyticsRepo    *repository.AnalyticsRepository
	Files            *storage.FileStore
	Hub              *ws.Hub
	Tasks            *service.TaskService
}

func NewHandler(db *pgxpool.Pool, files *storage.FileStore, hub *ws.Hub) *Handler {
	taskRepo := repository.NewTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	notifier := service.NewNotifier(notificationRepo, hub)

	return &Handler{
		DB:               db,
		UserRepo:         repository.NewUserRepository(db),
		NotificationRepo: notificationRepo,
		AnalyticsRepo:    repository.NewAnalyticsRepository(db),
		Files:            files,
		Hub:              hub,
		Tasks:            service.NewTaskService(taskRepo, files, notifier),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// fail maps the domain error taxonomy onto HTTP status codes.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

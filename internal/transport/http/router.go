package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/transport/http/handler"
	"github.com/taskhive/taskhive/internal/transport/http/middleware"
)

func NewRouter(logger *slog.Logger, taskHandler *handler.TaskHandler, userRepo repository.UserRepository, verifier *auth.Verifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(verifier)
	ownerGuard := middleware.OwnerGuard()
	ensureUser := middleware.EnsureUser(userRepo, logger)

	// All task routes carry the owner in the path for compatibility with the
	// public API shape, but OwnerGuard pins it to the verified identity.
	tasks := r.Group("/api/:user_id/tasks", authMW, ownerGuard, ensureUser)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:task_id", taskHandler.GetByID)
	tasks.PUT("/:task_id", taskHandler.Update)
	tasks.DELETE("/:task_id", taskHandler.Delete)
	tasks.PATCH("/:task_id/complete", taskHandler.ToggleComplete)

	return r
}

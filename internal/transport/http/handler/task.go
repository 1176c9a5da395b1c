package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/metrics"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/transport/http/middleware"
	"github.com/taskhive/taskhive/internal/usecase"
)

// taskUsecaser is the subset of TaskUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, input usecase.ListTasksInput) ([]*domain.Task, error)
	GetByID(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.Task, error)
	UpdateTask(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID, fields repository.UpdateTaskFields) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) error
	ToggleComplete(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.Task, error)
}

type TaskHandler struct {
	uc     taskUsecaser
	logger *slog.Logger
}

func NewTaskHandler(uc taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{uc: uc, logger: logger.With("component", "task_handler")}
}

// Field lengths are checked in the usecase, not via binding tags, so that
// violations surface as 422 with the offending field instead of a generic 400.
type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		UserID:      t.OwnerID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /api/:user_id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	task, err := h.uc.CreateTask(c.Request.Context(), usecase.CreateTaskInput{
		OwnerID:     ident.UserID,
		Title:       req.Title,
		Description: description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.respondError(c, err, "create task")
		return
	}

	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GET /api/:user_id/tasks?offset=&limit=&completed=
func (h *TaskHandler) List(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	offset := 0
	if s := c.Query("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		offset = v
	}

	limit := usecase.DefaultListLimit
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = v
	}

	var completed *bool
	if s := c.Query("completed"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be true or false"})
			return
		}
		completed = &v
	}

	tasks, err := h.uc.ListTasks(c.Request.Context(), usecase.ListTasksInput{
		OwnerID:   ident.UserID,
		Offset:    offset,
		Limit:     limit,
		Completed: completed,
	})
	if err != nil {
		h.respondError(c, err, "list tasks")
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/:user_id/tasks/:task_id
func (h *TaskHandler) GetByID(c *gin.Context) {
	ident, taskID, ok := h.taskParams(c)
	if !ok {
		return
	}

	task, err := h.uc.GetByID(c.Request.Context(), ident.UserID, taskID)
	if err != nil {
		h.respondError(c, err, "get task")
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// PUT /api/:user_id/tasks/:task_id
func (h *TaskHandler) Update(c *gin.Context) {
	ident, taskID, ok := h.taskParams(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.uc.UpdateTask(c.Request.Context(), ident.UserID, taskID, repository.UpdateTaskFields{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.respondError(c, err, "update task")
		return
	}

	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// DELETE /api/:user_id/tasks/:task_id
func (h *TaskHandler) Delete(c *gin.Context) {
	ident, taskID, ok := h.taskParams(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteTask(c.Request.Context(), ident.UserID, taskID); err != nil {
		h.respondError(c, err, "delete task")
		return
	}

	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	c.Status(http.StatusNoContent)
}

// PATCH /api/:user_id/tasks/:task_id/complete
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	ident, taskID, ok := h.taskParams(c)
	if !ok {
		return
	}

	task, err := h.uc.ToggleComplete(c.Request.Context(), ident.UserID, taskID)
	if err != nil {
		h.respondError(c, err, "toggle task")
		return
	}

	metrics.TaskOperationsTotal.WithLabelValues("toggle").Inc()
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// taskParams pulls the identity and the parsed task ID, writing the error
// response itself when either is unusable.
func (h *TaskHandler) taskParams(c *gin.Context) (domain.Identity, domain.TaskID, bool) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Identity{}, "", false
	}

	taskID, err := domain.ParseTaskID(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidTaskID})
		return domain.Identity{}, "", false
	}
	return ident, taskID, true
}

func (h *TaskHandler) respondError(c *gin.Context, err error, op string) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  errValidationFailed,
			"field":  ve.Field,
			"reason": ve.Reason,
		})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

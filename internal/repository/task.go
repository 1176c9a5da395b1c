package repository

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
)

type ListTasksInput struct {
	OwnerID   domain.UserID
	Offset    int
	Limit     int
	Completed *bool // nil = all tasks
}

// UpdateTaskFields carries a partial update. A nil field is "not provided"
// and leaves the stored value untouched; a pointer to the zero value is an
// explicit clear. The distinction matters for optional fields.
type UpdateTaskFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Every operation is scoped by the owner's ID as part of the query itself,
// never as an after-the-fact check. A task that exists under a different
// owner is indistinguishable from one that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID, fields UpdateTaskFields) (*domain.Task, error)
	Delete(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) error
}

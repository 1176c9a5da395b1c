package usecase

import (
	"context"
	"fmt"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/repository"
)

const DefaultListLimit = 50

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	OwnerID     domain.UserID
	Title       string
	Description string
	Completed   bool
}

// CreateTask validates the fields and persists a new task. The ID is minted
// here; the owner is always the verified caller.
func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := domain.ValidateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          domain.NewTaskID(),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

type ListTasksInput struct {
	OwnerID   domain.UserID
	Offset    int
	Limit     int // 0 = default
	Completed *bool
}

func (u *TaskUsecase) ListTasks(ctx context.Context, input ListTasksInput) ([]*domain.Task, error) {
	if input.Limit == 0 {
		input.Limit = DefaultListLimit
	}

	tasks, err := u.repo.List(ctx, repository.ListTasksInput{
		OwnerID:   input.OwnerID,
		Offset:    input.Offset,
		Limit:     input.Limit,
		Completed: input.Completed,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) GetByID(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial update. Nil fields are left untouched; a
// pointer to an empty description clears it.
func (u *TaskUsecase) UpdateTask(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID, fields repository.UpdateTaskFields) (*domain.Task, error) {
	if fields.Title != nil {
		if err := domain.ValidateTitle(*fields.Title); err != nil {
			return nil, err
		}
	}
	if fields.Description != nil {
		if err := domain.ValidateDescription(*fields.Description); err != nil {
			return nil, err
		}
	}

	task, err := u.repo.Update(ctx, ownerID, taskID, fields)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) error {
	if err := u.repo.Delete(ctx, ownerID, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ToggleComplete flips the completion flag. Read-then-update; concurrent
// toggles by the same owner are last-write-wins.
func (u *TaskUsecase) ToggleComplete(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	completed := !task.Completed
	updated, err := u.repo.Update(ctx, ownerID, taskID, repository.UpdateTaskFields{
		Completed: &completed,
	})
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return updated, nil
}

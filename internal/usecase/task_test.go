package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/usecase"
)

// ---- fakes ----

type fakeTaskRepo struct {
	create  func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	getByID func(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.Task, error)
	list    func(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error)
	update  func(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID, fields repository.UpdateTaskFields) (*domain.Task, error)
	delete  func(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) error
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return r.create(ctx, task)
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.Task, error) {
	return r.getByID(ctx, ownerID, taskID)
}

func (r *fakeTaskRepo) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	return r.list(ctx, input)
}

func (r *fakeTaskRepo) Update(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID, fields repository.UpdateTaskFields) (*domain.Task, error) {
	return r.update(ctx, ownerID, taskID, fields)
}

func (r *fakeTaskRepo) Delete(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) error {
	return r.delete(ctx, ownerID, taskID)
}

// passthroughRepo echoes created tasks back, the way the postgres repo does.
func passthroughRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		create: func(_ context.Context, task *domain.Task) (*domain.Task, error) {
			return task, nil
		},
	}
}

const testOwner = domain.UserID("u1")

// ---- CreateTask ----

func TestCreateTask_TitleAtLimit_Accepted(t *testing.T) {
	uc := usecase.NewTaskUsecase(passthroughRepo())

	task, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{
		OwnerID: testOwner,
		Title:   strings.Repeat("a", 100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(task.Title) != 100 {
		t.Errorf("title length = %d, want 100", len(task.Title))
	}
}

func TestCreateTask_TitleTooLong_Rejected(t *testing.T) {
	repo := &fakeTaskRepo{
		create: func(_ context.Context, _ *domain.Task) (*domain.Task, error) {
			t.Fatal("repo must not be called for an invalid task")
			return nil, nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	_, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{
		OwnerID: testOwner,
		Title:   strings.Repeat("a", 101),
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ve.Field != "title" {
		t.Errorf("field = %q, want %q", ve.Field, "title")
	}
}

func TestCreateTask_EmptyTitle_Rejected(t *testing.T) {
	uc := usecase.NewTaskUsecase(passthroughRepo())

	_, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{
		OwnerID: testOwner,
		Title:   "",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Errorf("err = %v, want ValidationError on title", err)
	}
}

func TestCreateTask_DescriptionBoundary(t *testing.T) {
	uc := usecase.NewTaskUsecase(passthroughRepo())

	if _, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{
		OwnerID:     testOwner,
		Title:       "ok",
		Description: strings.Repeat("d", 500),
	}); err != nil {
		t.Errorf("500-char description rejected: %v", err)
	}

	_, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{
		OwnerID:     testOwner,
		Title:       "ok",
		Description: strings.Repeat("d", 501),
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "description" {
		t.Errorf("err = %v, want ValidationError on description", err)
	}
}

func TestCreateTask_MintsFreshID(t *testing.T) {
	uc := usecase.NewTaskUsecase(passthroughRepo())

	first, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{OwnerID: testOwner, Title: "one"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{OwnerID: testOwner, Title: "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uuid.Parse(first.ID.String()); err != nil {
		t.Errorf("id %q is not a UUID", first.ID)
	}
	if first.ID == second.ID {
		t.Errorf("two creates produced the same id %q", first.ID)
	}
}

func TestCreateTask_OwnerComesFromInput(t *testing.T) {
	uc := usecase.NewTaskUsecase(passthroughRepo())

	task, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{
		OwnerID: testOwner,
		Title:   "mine",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.OwnerID != testOwner {
		t.Errorf("owner = %q, want %q", task.OwnerID, testOwner)
	}
}

// ---- ListTasks ----

func TestListTasks_DefaultLimit(t *testing.T) {
	var captured repository.ListTasksInput
	repo := &fakeTaskRepo{
		list: func(_ context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
			captured = input
			return nil, nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	if _, err := uc.ListTasks(context.Background(), usecase.ListTasksInput{OwnerID: testOwner}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Limit != usecase.DefaultListLimit {
		t.Errorf("limit = %d, want %d", captured.Limit, usecase.DefaultListLimit)
	}
	if captured.OwnerID != testOwner {
		t.Errorf("owner = %q, want %q", captured.OwnerID, testOwner)
	}
}

// ---- UpdateTask ----

func TestUpdateTask_OnlyProvidedFieldsReachRepo(t *testing.T) {
	var captured repository.UpdateTaskFields
	repo := &fakeTaskRepo{
		update: func(_ context.Context, _ domain.UserID, _ domain.TaskID, fields repository.UpdateTaskFields) (*domain.Task, error) {
			captured = fields
			return &domain.Task{}, nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	completed := true
	_, err := uc.UpdateTask(context.Background(), testOwner, domain.NewTaskID(),
		repository.UpdateTaskFields{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Title != nil || captured.Description != nil {
		t.Errorf("unset fields leaked into update: %+v", captured)
	}
	if captured.Completed == nil || !*captured.Completed {
		t.Errorf("completed = %v, want pointer to true", captured.Completed)
	}
}

func TestUpdateTask_InvalidTitle_Rejected(t *testing.T) {
	repo := &fakeTaskRepo{
		update: func(_ context.Context, _ domain.UserID, _ domain.TaskID, _ repository.UpdateTaskFields) (*domain.Task, error) {
			t.Fatal("repo must not be called for an invalid update")
			return nil, nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	title := strings.Repeat("a", 101)
	_, err := uc.UpdateTask(context.Background(), testOwner, domain.NewTaskID(),
		repository.UpdateTaskFields{Title: &title})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Errorf("err = %v, want ValidationError on title", err)
	}
}

func TestUpdateTask_ClearedDescription_Passes(t *testing.T) {
	var captured repository.UpdateTaskFields
	repo := &fakeTaskRepo{
		update: func(_ context.Context, _ domain.UserID, _ domain.TaskID, fields repository.UpdateTaskFields) (*domain.Task, error) {
			captured = fields
			return &domain.Task{}, nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	empty := ""
	if _, err := uc.UpdateTask(context.Background(), testOwner, domain.NewTaskID(),
		repository.UpdateTaskFields{Description: &empty}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Description == nil || *captured.Description != "" {
		t.Errorf("description = %v, want pointer to empty string", captured.Description)
	}
}

// ---- ToggleComplete ----

func TestToggleComplete_FlipsFlag(t *testing.T) {
	var captured repository.UpdateTaskFields
	repo := &fakeTaskRepo{
		getByID: func(_ context.Context, _ domain.UserID, taskID domain.TaskID) (*domain.Task, error) {
			return &domain.Task{ID: taskID, OwnerID: testOwner, Title: "t", Completed: false}, nil
		},
		update: func(_ context.Context, _ domain.UserID, taskID domain.TaskID, fields repository.UpdateTaskFields) (*domain.Task, error) {
			captured = fields
			return &domain.Task{ID: taskID, OwnerID: testOwner, Title: "t", Completed: *fields.Completed}, nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	task, err := uc.ToggleComplete(context.Background(), testOwner, domain.NewTaskID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Completed == nil || !*captured.Completed {
		t.Errorf("update received completed = %v, want pointer to true", captured.Completed)
	}
	if !task.Completed {
		t.Error("returned task is not completed")
	}
	if captured.Title != nil || captured.Description != nil {
		t.Errorf("toggle must only touch completed, got %+v", captured)
	}
}

func TestToggleComplete_NotFound(t *testing.T) {
	repo := &fakeTaskRepo{
		getByID: func(_ context.Context, _ domain.UserID, _ domain.TaskID) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	_, err := uc.ToggleComplete(context.Background(), testOwner, domain.NewTaskID())
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

// ---- DeleteTask ----

func TestDeleteTask_NotFoundPropagates(t *testing.T) {
	repo := &fakeTaskRepo{
		delete: func(_ context.Context, _ domain.UserID, _ domain.TaskID) error {
			return domain.ErrTaskNotFound
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	err := uc.DeleteTask(context.Background(), testOwner, domain.NewTaskID())
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

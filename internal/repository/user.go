package repository

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
)

type UserRepository interface {
	// Upsert records the authenticated user so the tasks FK constraint
	// always holds. Identity comes from the verified token, never input.
	Upsert(ctx context.Context, id domain.UserID, email string) error
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}

package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores users.
type Repository interface {
	// Create inserts a user. A duplicate email returns ErrEmailTaken.
	Create(ctx context.Context, user *User) error
	// FindByID returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email Email) (*User, error)
	// List returns all users ordered by name.
	List(ctx context.Context) ([]*User, error)
}

package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned when an id is not well-formed for the backend.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicateEmail is returned when a write violates email uniqueness.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// SearchByName returns users whose name contains pattern, ignoring case.
	SearchByName(ctx context.Context, pattern string) ([]entity.User, error)
	// Update applies patch and returns the stored record after the write.
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	// Delete removes the record and returns it as it was.
	Delete(ctx context.Context, id string) (*entity.User, error)
}

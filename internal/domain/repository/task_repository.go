package repository

import (
	"context"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
)

// TaskRepository defines the interface for task-related database operations.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	// ListWithClient returns every task joined with its client.
	ListWithClient(ctx context.Context) ([]entity.PopulatedTask, error)
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	// SearchByClientName returns the tasks whose client's name equals name.
	SearchByClientName(ctx context.Context, name string) ([]entity.PopulatedTask, error)
	Update(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, id string) (*entity.Task, error)
	// ValidID reports whether id is well-formed for this backend.
	ValidID(id string) bool
}

package repository

import "github.com/taskloop/taskloop/internal/domain/entity"

// TaskRepository defines the interface for task-related store operations.
//
// Implementations report a missing record through the domain sentinels and
// any driver-level fault through entity.ErrStoreUnavailable.
type TaskRepository interface {
	Create(t *entity.Task) error
	GetByID(id string) (*entity.Task, error)
	ListCreatedBy(userID string) ([]entity.Task, error)
	ListAssignedTo(userID string) ([]entity.Task, error)
	SetDone(id string, done bool) error
	// Delete removes the task and returns the number of removed records.
	// A concurrent duplicate delete observes 0.
	Delete(id string) (int64, error)
}

package repository

import "github.com/taskloop/taskloop/internal/domain/entity"

// UserRepository defines the interface for user-related store operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListAll() ([]entity.User, error)
}

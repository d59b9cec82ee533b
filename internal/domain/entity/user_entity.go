package entity

import (
	"time"
)

// User is the aggregate root for the user directory.
// PasswordHash holds a bcrypt hash and must never leave the service layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskloop/taskloop/internal/domain/entity"
	"github.com/taskloop/taskloop/internal/domain/repository"
)

// storeErr attaches the driver failure to the infrastructure sentinel so
// callers can branch with errors.Is while logs keep the original cause.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Email, u.PasswordHash, u.Name)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	// A malformed id cannot match any record; reject it before the driver
	// turns it into a cast error.
	if uuid.Validate(id) != nil {
		return nil, entity.ErrUserNotFound
	}

	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, storeErr(err)
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, storeErr(err)
	}

	return u, nil
}

func (r *UserRepository) ListAll() ([]entity.User, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, storeErr(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

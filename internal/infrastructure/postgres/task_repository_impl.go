package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskloop/taskloop/internal/domain/entity"
	"github.com/taskloop/taskloop/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(t *entity.Task) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (created_by_uid, created_by_name, assigned_to_uid, assigned_to_name, description, done)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, t.CreatedByUid, t.CreatedByName, t.AssignedToUid, t.AssignedToName, t.Description, t.Done)

	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *TaskRepository) GetByID(id string) (*entity.Task, error) {
	// Reject malformed ids before the driver turns them into cast errors.
	if uuid.Validate(id) != nil {
		return nil, entity.ErrTaskNotFound
	}

	ctx := context.Background()
	t := &entity.Task{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, created_by_uid, created_by_name, assigned_to_uid, assigned_to_name, description, done, created_at
		FROM tasks
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.CreatedByUid, &t.CreatedByName, &t.AssignedToUid,
		&t.AssignedToName, &t.Description, &t.Done, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrTaskNotFound
		}
		return nil, storeErr(err)
	}

	return t, nil
}

func (r *TaskRepository) ListCreatedBy(userID string) ([]entity.Task, error) {
	return r.list(`created_by_uid`, userID)
}

func (r *TaskRepository) ListAssignedTo(userID string) ([]entity.Task, error) {
	return r.list(`assigned_to_uid`, userID)
}

func (r *TaskRepository) list(column, userID string) ([]entity.Task, error) {
	if uuid.Validate(userID) != nil {
		return []entity.Task{}, nil
	}

	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, created_by_uid, created_by_name, assigned_to_uid, assigned_to_name, description, done, created_at
		FROM tasks
		WHERE `+column+` = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.CreatedByUid, &t.CreatedByName, &t.AssignedToUid,
			&t.AssignedToName, &t.Description, &t.Done, &t.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return tasks, nil
}

func (r *TaskRepository) SetDone(id string, done bool) error {
	if uuid.Validate(id) != nil {
		return entity.ErrTaskNotFound
	}

	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		UPDATE tasks SET done = $1 WHERE id = $2
	`, done, id)
	if err != nil {
		return storeErr(err)
	}
	if res.RowsAffected() == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(id string) (int64, error) {
	if uuid.Validate(id) != nil {
		return 0, nil
	}

	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		DELETE FROM tasks WHERE id = $1
	`, id)
	if err != nil {
		return 0, storeErr(err)
	}
	return res.RowsAffected(), nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

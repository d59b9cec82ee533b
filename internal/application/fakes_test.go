package application

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taskloop/taskloop/internal/domain/entity"
	"github.com/taskloop/taskloop/internal/domain/repository"
)

// In-memory repositories. State matters for the authorization and idempotency
// properties, so these are real fakes rather than call recorders. Setting
// fail simulates a store outage on every operation.

func storeFault() error {
	return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, errors.New("connection refused"))
}

type memUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
	fail  bool
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return storeFault()
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, storeFault()
	}
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, storeFault()
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *memUserRepo) ListAll() ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, storeFault()
	}
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

type memTaskRepo struct {
	mu    sync.Mutex
	tasks []*entity.Task
	fail  bool
}

func (r *memTaskRepo) Create(t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return storeFault()
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	cp := *t
	r.tasks = append(r.tasks, &cp)
	return nil
}

func (r *memTaskRepo) GetByID(id string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, storeFault()
	}
	for _, t := range r.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, entity.ErrTaskNotFound
}

func (r *memTaskRepo) ListCreatedBy(userID string) ([]entity.Task, error) {
	return r.filter(func(t *entity.Task) bool { return t.CreatedByUid == userID })
}

func (r *memTaskRepo) ListAssignedTo(userID string) ([]entity.Task, error) {
	return r.filter(func(t *entity.Task) bool { return t.AssignedToUid == userID })
}

func (r *memTaskRepo) filter(keep func(*entity.Task) bool) ([]entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, storeFault()
	}
	out := make([]entity.Task, 0)
	for _, t := range r.tasks {
		if keep(t) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) SetDone(id string, done bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return storeFault()
	}
	for _, t := range r.tasks {
		if t.ID == id {
			t.Done = done
			return nil
		}
	}
	return entity.ErrTaskNotFound
}

func (r *memTaskRepo) Delete(id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return 0, storeFault()
	}
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

var _ repository.TaskRepository = (*memTaskRepo)(nil)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskloop/taskloop/internal/domain/entity"
	repo "github.com/taskloop/taskloop/internal/domain/repository"
	"github.com/taskloop/taskloop/pkg/helpers"
)

// Task lifecycle event types published to the broker.
const (
	EventTaskCreated     = "task.created"
	EventTaskDoneChanged = "task.done_changed"
	EventTaskDeleted     = "task.deleted"
)

// TaskEvent is the message published after a successful task mutation.
type TaskEvent struct {
	Type    string    `json:"type"`
	TaskID  string    `json:"task_id"`
	ActorID string    `json:"actor_id"`
	Done    bool      `json:"done"`
	At      time.Time `json:"at"`
}

// TaskService holds the authorization-aware task operations. Every mutation
// re-checks the caller's identity against the current persisted ownership
// fields, never against anything embedded in the token beyond the user id.
type TaskService struct {
	Tasks  repo.TaskRepository
	Users  *UserService
	Events *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, users *UserService, events *helpers.RabbitPublisher, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Users: users, Events: events, Logger: logger}
}

// Create persists a new open task. Both the creator (from the claim) and the
// assignee must resolve against the user directory before anything is stored;
// display names are captured at this moment and never synced afterwards.
func (s *TaskService) Create(ctx context.Context, claim *helpers.Claims, description, assignedToUid string) (*entity.Task, error) {
	if strings.TrimSpace(description) == "" {
		return nil, entity.ErrInvalidInput
	}

	creator, err := s.Users.FindByID(ctx, claim.UserID)
	if err != nil {
		return nil, asInvalidUser(err)
	}
	assignee, err := s.Users.FindByID(ctx, assignedToUid)
	if err != nil {
		return nil, asInvalidUser(err)
	}

	t := &entity.Task{
		CreatedByUid:   creator.ID,
		CreatedByName:  creator.Name,
		AssignedToUid:  assignee.ID,
		AssignedToName: assignee.Name,
		Description:    description,
		Done:           false,
	}
	if err := s.Tasks.Create(t); err != nil {
		return nil, err
	}
	s.publish(ctx, TaskEvent{Type: EventTaskCreated, TaskID: t.ID, ActorID: claim.UserID})
	return t, nil
}

// ListCreatedBy returns the tasks created by the given user in insertion order.
func (s *TaskService) ListCreatedBy(ctx context.Context, userID string) ([]entity.Task, error) {
	return s.Tasks.ListCreatedBy(userID)
}

// ListAssignedTo returns the tasks assigned to the given user in insertion order.
func (s *TaskService) ListAssignedTo(ctx context.Context, userID string) ([]entity.Task, error) {
	return s.Tasks.ListAssignedTo(userID)
}

// SetDone flips the done flag. Only the assignee may do this, creator
// included in the exclusion. Setting the current value again is a no-op with
// an identical observable result.
func (s *TaskService) SetDone(ctx context.Context, claim *helpers.Claims, taskID string, done bool) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if t.AssignedToUid != claim.UserID {
		return nil, entity.ErrNotAuthorized
	}
	if err := s.Tasks.SetDone(taskID, done); err != nil {
		return nil, err
	}
	t.Done = done
	s.publish(ctx, TaskEvent{Type: EventTaskDoneChanged, TaskID: t.ID, ActorID: claim.UserID, Done: done})
	return t, nil
}

// Delete removes the task. Only the creator may do this, assignee included in
// the exclusion. Returns the number of removed records; when two deletes race,
// the loser observes ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, claim *helpers.Claims, taskID string) (int64, error) {
	t, err := s.Tasks.GetByID(taskID)
	if err != nil {
		return 0, err
	}
	if t.CreatedByUid != claim.UserID {
		return 0, entity.ErrNotAuthorized
	}
	n, err := s.Tasks.Delete(taskID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, entity.ErrTaskNotFound
	}
	s.publish(ctx, TaskEvent{Type: EventTaskDeleted, TaskID: taskID, ActorID: claim.UserID})
	return n, nil
}

// asInvalidUser translates a directory miss into the creation-time business
// error; store faults pass through untouched.
func asInvalidUser(err error) error {
	if errors.Is(err, entity.ErrUserNotFound) {
		return entity.ErrInvalidUser
	}
	return err
}

// publish is best effort: a broker outage must not fail the mutation that
// already committed.
func (s *TaskService) publish(ctx context.Context, ev TaskEvent) {
	if s.Events == nil {
		return
	}
	ev.At = time.Now().UTC()
	if err := s.Events.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"type": ev.Type, "task_id": ev.TaskID}).Warn("task event publish failed")
	}
}

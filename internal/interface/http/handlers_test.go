package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/taskloop/taskloop/internal/application"
	"github.com/taskloop/taskloop/internal/domain/entity"
	handlers "github.com/taskloop/taskloop/internal/interface/http"
	"github.com/taskloop/taskloop/internal/router"
	"github.com/taskloop/taskloop/internal/router/modules"
	"github.com/taskloop/taskloop/pkg/helpers"
	"github.com/taskloop/taskloop/pkg/validation"
)

// Compact in-memory repositories so the tests cover the whole
// middleware -> handler -> service path without a database.

type userRepo struct{ users []*entity.User }

func (r *userRepo) Create(u *entity.User) error {
	u.ID = newID(len(r.users))
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *userRepo) ListAll() ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type taskRepo struct{ tasks []*entity.Task }

func (r *taskRepo) Create(t *entity.Task) error {
	t.ID = newID(len(r.tasks))
	cp := *t
	r.tasks = append(r.tasks, &cp)
	return nil
}

func (r *taskRepo) GetByID(id string) (*entity.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, entity.ErrTaskNotFound
}

func (r *taskRepo) ListCreatedBy(uid string) ([]entity.Task, error) {
	out := make([]entity.Task, 0)
	for _, t := range r.tasks {
		if t.CreatedByUid == uid {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *taskRepo) ListAssignedTo(uid string) ([]entity.Task, error) {
	out := make([]entity.Task, 0)
	for _, t := range r.tasks {
		if t.AssignedToUid == uid {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *taskRepo) SetDone(id string, done bool) error {
	for _, t := range r.tasks {
		if t.ID == id {
			t.Done = done
			return nil
		}
	}
	return entity.ErrTaskNotFound
}

func (r *taskRepo) Delete(id string) (int64, error) {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func newID(n int) string {
	return "id-" + string(rune('a'+n))
}

type fixture struct {
	engine *gin.Engine
	jwt    *helpers.JWTManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	users := application.NewUserService(&userRepo{}, jwtm, nil, logger)
	tasks := application.NewTaskService(&taskRepo{}, users, nil, logger)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(users, logger), jwtm))
	reg.Add(modules.NewTaskModule(handlers.NewTaskHandler(tasks, logger), jwtm))
	reg.RegisterAll()

	return &fixture{engine: engine, jwt: jwtm}
}

func (f *fixture) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-access-token", token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var payload map[string]any
	if w.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func (f *fixture) register(t *testing.T, name, email string) string {
	t.Helper()
	w, body := f.do(t, http.MethodPost, "/users/", "", `{"name":"`+name+`","email":"`+email+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	return body["id"].(string)
}

func (f *fixture) login(t *testing.T, email string) string {
	t.Helper()
	w, body := f.do(t, http.MethodPost, "/users/login", "", `{"email":"`+email+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	return body["token"].(string)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	w, body := f.do(t, http.MethodPost, "/users/", "", `{"email":"a@example.com","password":"password123"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, body, "error")

	f.register(t, "Alice", "alice@example.com")
	w, _ = f.do(t, http.MethodPost, "/users/", "", `{"name":"Other","email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "alice@example.com")

	w, _ := f.do(t, http.MethodPost, "/users/login", "", `{"email":"alice@example.com","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodPost, "/users/login", "", `{"email":"ghost@example.com","password":"password123"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserListingTokenStatuses(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "alice@example.com")
	token := f.login(t, "alice@example.com")

	// Missing token on the listing is a 400 by contract.
	w, _ := f.do(t, http.MethodGet, "/users/", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(t, http.MethodGet, "/users/", "garbage", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := f.do(t, http.MethodGet, "/users/", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["users"], 1)
	made := body["request_made_by"].(map[string]any)
	require.Equal(t, "alice@example.com", made["email"])
}

func TestTaskRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(t, http.MethodPost, "/tasks/", "", `{"description":"x","assignedToUid":"y"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodGet, "/tasks/createdby/", "garbage", "")
	require.Equal(t, http.StatusForbidden, w.Code)

	expired := helpers.NewJWTManager("test-secret", -time.Minute)
	tok, _, err := expired.Issue("someone", "someone@example.com")
	require.NoError(t, err)
	w, _ = f.do(t, http.MethodDelete, "/tasks/whatever", tok, "")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	f := newFixture(t)
	aliceID := f.register(t, "Alice", "alice@example.com")
	bobID := f.register(t, "Bob", "bob@example.com")
	aliceTok := f.login(t, "alice@example.com")
	bobTok := f.login(t, "bob@example.com")

	// Alice creates a task assigned to Bob.
	w, body := f.do(t, http.MethodPost, "/tasks/", aliceTok, `{"description":"write spec","assignedToUid":"`+bobID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	taskID := body["id"].(string)

	// Assigning to an unknown user is a 400.
	w, _ = f.do(t, http.MethodPost, "/tasks/", aliceTok, `{"description":"x","assignedToUid":"nobody"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Listings.
	w, _ = f.do(t, http.MethodGet, "/tasks/createdby/", aliceTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	var created []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created, 1)
	require.Equal(t, aliceID, created[0]["createdByUid"])

	w, body = f.do(t, http.MethodGet, "/tasks/assignedto/", bobTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["tasks"], 1)

	// Missing done field.
	w, _ = f.do(t, http.MethodPatch, "/tasks/"+taskID, bobTok, `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Creator may not flip done.
	w, _ = f.do(t, http.MethodPatch, "/tasks/"+taskID, aliceTok, `{"done":true}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w, body = f.do(t, http.MethodPatch, "/tasks/"+taskID, bobTok, `{"done":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, taskID, body["taskUid"])

	// Unknown task id.
	w, _ = f.do(t, http.MethodPatch, "/tasks/no-such-task", bobTok, `{"done":true}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Assignee may not delete.
	w, _ = f.do(t, http.MethodDelete, "/tasks/"+taskID, bobTok, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w, body = f.do(t, http.MethodDelete, "/tasks/"+taskID, aliceTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, body["tasksAffected"])

	w, _ = f.do(t, http.MethodDelete, "/tasks/"+taskID, aliceTok, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/taskloop/taskloop/internal/domain/entity"
	repo "github.com/taskloop/taskloop/internal/domain/repository"
	"github.com/taskloop/taskloop/pkg/helpers"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// login surface does not reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

const userCacheTTL = 5 * time.Minute

// UserService is the user directory: registration, login and identity lookups.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger}
}

// UserSummary is the outward shape of a directory entry. Password hashes
// never leave the service.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResult struct {
	Token      string      `json:"token"`
	Expiration int         `json:"expiration"`
	LoggedUser UserSummary `json:"logged_user"`
}

func userCacheKey(id string) string {
	return "user:directory:" + id
}

// normalizeEmail lower-cases at write and lookup time; uniqueness is enforced
// on the normalized value.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a freshly salted bcrypt hash.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, entity.ErrInvalidInput
	}

	_, err := s.Repo.GetByEmail(email)
	switch {
	case err == nil:
		return nil, entity.ErrDuplicateEmail
	case !errors.Is(err, entity.ErrUserNotFound):
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, PasswordHash: hash, Name: name}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}
	return u, nil
}

// Authenticate verifies email/password and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	ok, err := helpers.CheckPassword(u.PasswordHash, password)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("stored credential hash unreadable")
		}
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, _, err := s.JWT.Issue(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token issue failed")
		}
		return nil, err
	}
	return &LoginResult{
		Token:      token,
		Expiration: int(s.JWT.TTL.Seconds()),
		LoggedUser: UserSummary{ID: u.ID, Email: u.Email, Name: u.Name},
	}, nil
}

// FindByID resolves a user, reading through a short-lived redis cache.
// Names are immutable, so a stale entry cannot drift from the store.
func (s *UserService) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		hit, err := helpers.RedisGetJSON(ctx, s.Redis, userCacheKey(id), &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("user cache read failed")
		}
		if hit {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, userCacheKey(id), u, userCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("user cache write failed")
		}
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.Repo.GetByEmail(normalizeEmail(email))
}

// ListAll returns every directory entry without credential material.
func (s *UserService) ListAll(ctx context.Context) ([]UserSummary, error) {
	users, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{ID: u.ID, Email: u.Email, Name: u.Name})
	}
	return out, nil
}

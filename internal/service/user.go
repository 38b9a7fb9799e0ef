package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"VaultKeeper/internal/auth"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
)

// Session — результат успешной регистрации или входа.
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// UserService — регистрация, вход и администрирование учётных записей.
type UserService struct {
	repo   repo.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	logger *zap.SugaredLogger
}

func NewUserService(r repo.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, logger *zap.SugaredLogger) *UserService {
	return &UserService{repo: r, hasher: hasher, tokens: tokens, logger: logger}
}

// Register создаёт пользователя с ролью user и сразу выдаёт токен.
// Email и пароль уже провалидированы и нормализованы.
func (s *UserService) Register(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.create(ctx, email, password, model.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *UserService) create(ctx context.Context, email, password string, role model.Role) (*model.User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.CreateUser(ctx, &model.User{Email: email, Password: digest, Role: role})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login проверяет пароль. Отсутствующий пользователь и неверный пароль неразличимы
// ни по ошибке, ни по времени ответа.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && u == nil) {
		s.hasher.Burn(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *UserService) issue(u *model.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(auth.Principal{ID: u.ID, Role: u.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// GetUser возвращает пользователя по id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser меняет email и роль. Уже выданные токены сохраняют старую роль до истечения.
func (s *UserService) UpdateUser(ctx context.Context, id int64, email string, role model.Role) (*model.User, error) {
	u, err := s.repo.UpdateUser(ctx, id, email, role)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repo.ErrDuplicate):
		return nil, ErrConflict
	case err != nil:
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	s.logger.Infow("user updated", "user_id", id, "role", role)
	return u, nil
}

// DeleteUser удаляет учётку и её записи. Удалить самого себя нельзя даже admin.
func (s *UserService) DeleteUser(ctx context.Context, actor auth.Principal, id int64) error {
	if actor.ID == id {
		return ErrSelfDelete
	}
	ok, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	s.logger.Infow("user deleted", "user_id", id, "by", actor.ID)
	return nil
}

// EnsureAdmin создаёт администратора при первом запуске, если его ещё нет.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := s.create(ctx, email, password, model.RoleAdmin)
	if errors.Is(err, ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

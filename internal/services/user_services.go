package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ProjectDesk/internal/model"
	"ProjectDesk/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	Users UserStore
	Roles RoleStore
	Log   *slog.Logger
}

func NewUserService(users UserStore, roles RoleStore, log *slog.Logger) *UserService {
	return &UserService{Users: users, Roles: roles, Log: log}
}

// Create adds a user with the given role. A missing role or an
// already-registered email is a silent no-op: the directory form
// redirects either way, so the caller gets no error to surface.
func (s *UserService) Create(ctx context.Context, name, email string, roleID int64) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	role, err := s.Roles.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.Log.Warn("user create skipped: role not found", "role_id", roleID)
			return nil
		}
		return fmt.Errorf("look up role: %w", err)
	}

	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		s.Log.Warn("user create skipped: email already registered", "email", email)
		return nil
	}

	if _, err := s.Users.CreateWithRole(ctx, name, email, uuid.NewString(), role.ID); err != nil {
		return err
	}
	return nil
}

// List returns all users (with their roles) and all roles, for the
// directory page.
func (s *UserService) List(ctx context.Context) ([]model.User, []model.Role, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	roles, err := s.Roles.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return users, roles, nil
}

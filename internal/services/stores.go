package services

import (
	"context"

	"ProjectDesk/internal/model"
)

// Store interfaces are declared here, where they are consumed; the
// repository package provides the implementations. Lookups that match
// nothing return repository.ErrNotFound.

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, name, email, uniquifier string) (int64, error)
	CreateWithRole(ctx context.Context, name, email, uniquifier string, roleID int64) (int64, error)
	List(ctx context.Context) ([]model.User, error)
}

type RoleStore interface {
	GetByID(ctx context.Context, id int64) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p *model.Project) (int64, error)
	List(ctx context.Context) ([]model.Project, error)
}

package services

import (
	"context"

	"ProjectDesk/internal/model"
)

type ProjectService struct {
	Repo ProjectStore
}

func NewProjectService(r ProjectStore) *ProjectService {
	return &ProjectService{Repo: r}
}

func (s *ProjectService) Create(ctx context.Context, p *model.Project) (int64, error) {
	return s.Repo.Create(ctx, p)
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.Repo.List(ctx)
}

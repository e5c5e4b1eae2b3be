package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ProjectDesk/internal/model"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) (int64, error) {
	var id int64
	query := `
		INSERT INTO projects (name, short_description, background, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Name, p.ShortDescription, p.Background, p.StartDate, p.EndDate, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return id, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	query := `
		SELECT id, name, short_description, background, start_date, end_date, created_at
		FROM projects
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.ShortDescription, &p.Background,
			&p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

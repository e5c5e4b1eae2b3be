package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ProjectDesk/internal/dbx"
	"ProjectDesk/internal/model"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, name, confirmed_at, uniquifier, created_at FROM users WHERE email=$1`
	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.ConfirmedAt, &u.Uniquifier, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, name, confirmed_at, uniquifier, created_at FROM users WHERE id=$1`
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.ConfirmedAt, &u.Uniquifier, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	if err := r.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

// Create inserts a user with no roles and returns the new id. Used by
// the login-link flow, where first contact doubles as registration.
func (r *UserRepository) Create(ctx context.Context, name, email, uniquifier string) (int64, error) {
	var id int64
	err := dbx.WithTx(ctx, r.DB, func(ctx context.Context, tx dbx.DBTX) error {
		return tx.QueryRowContext(ctx, insertUserSQL, email, name, uniquifier, time.Now()).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// CreateWithRole inserts a user and its role membership in one
// transaction, so a failed membership insert leaves no orphan user.
func (r *UserRepository) CreateWithRole(ctx context.Context, name, email, uniquifier string, roleID int64) (int64, error) {
	var id int64
	err := dbx.WithTx(ctx, r.DB, func(ctx context.Context, tx dbx.DBTX) error {
		if err := tx.QueryRowContext(ctx, insertUserSQL, email, name, uniquifier, time.Now()).Scan(&id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO roles_users (user_id, role_id) VALUES ($1, $2)`, id, roleID)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("create user with role: %w", err)
	}
	return id, nil
}

const insertUserSQL = `INSERT INTO users (email, name, uniquifier, created_at) VALUES ($1, $2, $3, $4) RETURNING id`

// List returns all users with their role memberships attached.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.confirmed_at, u.created_at,
		       r.id, r.name
		FROM users u
		LEFT JOIN roles_users ru ON ru.user_id = u.id
		LEFT JOIN roles r ON r.id = ru.role_id
		ORDER BY u.id, r.id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var (
			u        model.User
			roleID   sql.NullInt64
			roleName sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.ConfirmedAt, &u.CreatedAt, &roleID, &roleName); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].ID != u.ID {
			out = append(out, u)
		}
		if roleID.Valid {
			last := &out[len(out)-1]
			last.Roles = append(last.Roles, model.Role{ID: roleID.Int64, Name: roleName.String})
		}
	}
	return out, rows.Err()
}

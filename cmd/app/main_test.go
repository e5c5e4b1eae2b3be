package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"ProjectDesk/internal/middleware"
	"ProjectDesk/internal/model"
	"ProjectDesk/internal/repository"
	"ProjectDesk/internal/services"
	"ProjectDesk/internal/token"

	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

// --- in-memory fakes wired behind the real services ---

type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (f *fakeUserStore) Create(_ context.Context, name, email, uniquifier string) (int64, error) {
	f.nextID++
	f.users[f.nextID] = &model.User{
		ID: f.nextID, Name: name, Email: email, Uniquifier: uniquifier, CreatedAt: time.Now(),
	}
	return f.nextID, nil
}

func (f *fakeUserStore) CreateWithRole(ctx context.Context, name, email, uniquifier string, roleID int64) (int64, error) {
	id, err := f.Create(ctx, name, email, uniquifier)
	if err != nil {
		return 0, err
	}
	f.users[id].Roles = []model.Role{{ID: roleID}}
	return id, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeRoleStore struct {
	roles map[int64]*model.Role
}

func (f *fakeRoleStore) GetByID(_ context.Context, id int64) (*model.Role, error) {
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoleStore) List(_ context.Context) ([]model.Role, error) {
	out := make([]model.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, *r)
	}
	return out, nil
}

type fakeProjectStore struct {
	projects []model.Project
}

func (f *fakeProjectStore) Create(_ context.Context, p *model.Project) (int64, error) {
	p.ID = int64(len(f.projects) + 1)
	p.CreatedAt = time.Now()
	f.projects = append(f.projects, *p)
	return p.ID, nil
}

func (f *fakeProjectStore) List(_ context.Context) ([]model.Project, error) {
	return f.projects, nil
}

type recordingMailer struct {
	sent []string // login URLs, in send order
	to   []string
	err  error
}

func (m *recordingMailer) SendLoginLink(_ context.Context, toEmail, loginURL string) error {
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, toEmail)
	m.sent = append(m.sent, loginURL)
	return nil
}

func userFixture(id int64, email string) *model.User {
	return &model.User{ID: id, Email: email, Name: "fixture", CreatedAt: time.Now()}
}

type testApp struct {
	e        *echo.Echo
	users    *fakeUserStore
	roles    *fakeRoleStore
	projects *fakeProjectStore
	mailer   *recordingMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithSessions(t, middleware.NewSessionManager([]byte(testSecret)))
}

func newTestAppWithSessions(t *testing.T, establisher sessionEstablisher) *testApp {
	t.Helper()

	users := &fakeUserStore{users: map[int64]*model.User{}}
	roles := &fakeRoleStore{roles: map[int64]*model.Role{
		1: {ID: 1, Name: "admin"},
		2: {ID: 2, Name: "analyst"},
	}}
	projects := &fakeProjectStore{}
	mailer := &recordingMailer{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	signer := token.NewSigner([]byte(testSecret), 24*time.Hour)

	e := echo.New()
	e.Renderer = newTemplateRenderer()
	e.Use(middleware.NewSessionManager([]byte(testSecret)).Middleware())

	registerProjectRoutes(e, services.NewProjectService(projects))
	registerUserRoutes(e, services.NewUserService(users, roles, logger))
	registerLoginRoutes(e, services.NewLoginService(users, mailer, signer, "http://desk.local", logger), establisher)

	return &testApp{e: e, users: users, roles: roles, projects: projects, mailer: mailer}
}

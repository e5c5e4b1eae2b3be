package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ProjectDesk/external/smtpmail"

	"ProjectDesk/internal/config"
	"ProjectDesk/internal/db"
	"ProjectDesk/internal/middleware"
	"ProjectDesk/internal/repository"
	"ProjectDesk/internal/services"
	"ProjectDesk/internal/token"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// CONFIG
	// ======================
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// ======================
	// INFRA
	// ======================
	pool, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatal(err)
	}

	// ======================
	// EXTERNALS
	// ======================
	mailer, err := smtpmail.New(
		cfg.MailServer,
		cfg.MailPort,
		cfg.MailUseTLS,
		cfg.MailUsername,
		cfg.MailPassword,
		cfg.MailDefaultSender,
	)
	if err != nil {
		log.Fatal(err)
	}

	signer := token.NewSigner([]byte(cfg.SecretKey), cfg.LoginTokenMaxAge)
	sessions := middleware.NewSessionManager([]byte(cfg.SecretKey))

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)

	// ======================
	// SERVICES
	// ======================
	projectSvc := services.NewProjectService(projectRepo)
	userSvc := services.NewUserService(userRepo, roleRepo, logger)
	loginSvc := services.NewLoginService(userRepo, mailer, signer, cfg.BaseURL, logger)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Renderer = newTemplateRenderer()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(sessions.Middleware())

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerProjectRoutes(e, projectSvc)
	registerUserRoutes(e, userSvc)
	registerLoginRoutes(e, loginSvc, sessions)

	// ======================
	// SERVER
	// ======================
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
}

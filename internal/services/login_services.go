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

var (
	ErrEmailRequired = errors.New("email is required")
	ErrUserNotFound  = errors.New("user not found")
	ErrDelivery      = errors.New("login link delivery failed")
)

// TokenSigner issues and verifies the signed login-link token.
// Verify distinguishes invalid, expired, and malformed tokens via the
// token package's sentinel errors.
type TokenSigner interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, error)
}

// LoginService implements the passwordless flow: request a link,
// verify a link. Registration and login share one entry point; the
// first link request for an unknown email creates the account.
//
// Tokens are stateless and stay valid for their whole window even if
// the email carrying them was never delivered; there is no
// server-side revocation.
type LoginService struct {
	Users   UserStore
	Mailer  EmailSender
	Signer  TokenSigner
	BaseURL string
	Log     *slog.Logger
}

func NewLoginService(users UserStore, mailer EmailSender, signer TokenSigner, baseURL string, log *slog.Logger) *LoginService {
	return &LoginService{
		Users:   users,
		Mailer:  mailer,
		Signer:  signer,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Log:     log,
	}
}

// RequestLink looks up (or creates) the user for the given email,
// signs a login token, and emails the verification URL. The mail send
// is blocking; a transport failure fails the whole request.
func (s *LoginService) RequestLink(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		id, createErr := s.Users.Create(ctx, localPart(email), email, uuid.NewString())
		if createErr != nil {
			return fmt.Errorf("register user: %w", createErr)
		}
		u = &model.User{ID: id, Email: email}
		s.Log.Info("registered user via login link", "user_id", id)
	} else if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}

	tok, err := s.Signer.Issue(u.ID)
	if err != nil {
		return fmt.Errorf("sign login token: %w", err)
	}

	loginURL := s.BaseURL + "/login/" + tok
	if err := s.Mailer.SendLoginLink(ctx, u.Email, loginURL); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// VerifyLink validates the token and resolves it to a user. Token
// failures pass through as the token package's sentinels; a valid
// token whose user no longer exists is ErrUserNotFound.
func (s *LoginService) VerifyLink(ctx context.Context, tok string) (*model.User, error) {
	id, err := s.Signer.Verify(tok)
	if err != nil {
		return nil, err
	}

	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return u, nil
}

// localPart derives a default display name from an email address.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

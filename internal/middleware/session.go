package middleware

import (
	"net/http"
	"time"

	"ProjectDesk/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "session"

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// SessionManager signs and reads the session cookie. The session is a
// JWT so no server-side session store is needed.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret []byte) *SessionManager {
	return &SessionManager{secret: secret, ttl: 24 * time.Hour}
}

// Establish signs a session for the user and sets it as an HTTP-only
// cookie on the response.
func (m *SessionManager) Establish(c echo.Context, u *model.User) error {
	claims := &SessionClaims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "projectdesk",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Middleware parses the session cookie, if any, and attaches the
// claims to the request context. An absent or invalid cookie leaves
// the request anonymous; no route requires a session.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			claims := &SessionClaims{}
			parsed, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
				return m.secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithStrictDecoding())
			if err != nil || !parsed.Valid {
				return next(c)
			}
			c.Set("session_claims", claims)
			return next(c)
		}
	}
}

// GetClaims returns the session claims attached by Middleware, or nil
// for an anonymous request.
func GetClaims(c echo.Context) *SessionClaims {
	v := c.Get("session_claims")
	if v == nil {
		return nil
	}
	if cl, ok := v.(*SessionClaims); ok {
		return cl
	}
	return nil
}

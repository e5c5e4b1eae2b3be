// Package token implements the signed login-link token: an HS256 JWT
// carrying only the user id and an issued-at timestamp. The token has
// no embedded expiry; the verifier enforces a maximum age against the
// issued-at claim, so the validity window is a server-side setting.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid means the signature did not verify or the token could
	// not be parsed at all.
	ErrInvalid = errors.New("login token invalid")
	// ErrExpired means the signature verified but the token is older
	// than the configured maximum age.
	ErrExpired = errors.New("login token expired")
	// ErrMalformed means the signature verified but the embedded user
	// id is not a well-formed integer.
	ErrMalformed = errors.New("login token malformed")
)

type Signer struct {
	secret []byte
	maxAge time.Duration

	now func() time.Time // swapped in tests
}

func NewSigner(secret []byte, maxAge time.Duration) *Signer {
	return &Signer{secret: secret, maxAge: maxAge, now: time.Now}
}

// Issue signs a token for the given user id, stamped with the current
// time.
func (s *Signer) Issue(userID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  strconv.FormatInt(userID, 10),
		IssuedAt: jwt.NewNumericDate(s.now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature first, then the age, then the shape of
// the embedded id. A tampered token is always ErrInvalid even when it
// is also stale.
func (s *Signer) Verify(tok string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	// Strict decoding rejects non-canonical base64url, so a flipped
	// padding bit cannot decode to the same signature bytes.
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithStrictDecoding())
	if err != nil || !parsed.Valid {
		return 0, ErrInvalid
	}
	if claims.IssuedAt == nil {
		return 0, ErrInvalid
	}
	if s.now().Sub(claims.IssuedAt.Time) > s.maxAge {
		return 0, ErrExpired
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}
	return id, nil
}

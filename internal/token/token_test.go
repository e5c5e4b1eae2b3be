package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	s := NewSigner([]byte("super-secret"), 24*time.Hour)

	tok, err := s.Issue(42)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	id, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if id != 42 {
		t.Fatalf("user id mismatch: got %d want 42", id)
	}
}

func TestVerify_Replayable(t *testing.T) {
	t.Parallel()

	s := NewSigner([]byte("super-secret"), 24*time.Hour)
	tok, err := s.Issue(7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// No single-use invalidation: the same unexpired token verifies
	// any number of times.
	for i := 0; i < 2; i++ {
		id, err := s.Verify(tok)
		if err != nil {
			t.Fatalf("Verify #%d error: %v", i+1, err)
		}
		if id != 7 {
			t.Fatalf("Verify #%d: got id %d want 7", i+1, id)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewSigner([]byte("right-secret"), time.Hour).Issue(1)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewSigner([]byte("wrong-secret"), time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	s := NewSigner([]byte("super-secret"), time.Hour)
	tok, err := s.Issue(1)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip the low bit of every signature character in turn,
	// including the final one whose trailing bits are base64url
	// padding. Every mutation must fail.
	sigStart := strings.LastIndex(tok, ".") + 1
	for i := sigStart; i < len(tok); i++ {
		b := []byte(tok)
		b[i] ^= 0x01

		_, err := s.Verify(string(b))
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("bit flip at position %d: expected ErrInvalid, got %v", i, err)
		}
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	s := NewSigner([]byte("super-secret"), 24*time.Hour)
	s.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	tok, err := s.Issue(9)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	s.now = time.Now
	_, err = s.Verify(tok)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_TamperedAndExpired(t *testing.T) {
	t.Parallel()

	s := NewSigner([]byte("super-secret"), 24*time.Hour)
	s.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	tok, err := s.Issue(9)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	s.now = time.Now

	b := []byte(tok)
	b[len(b)-1] ^= 0x01

	// Signature is checked before age.
	_, err = s.Verify(string(b))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerify_MalformedSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	claims := jwt.RegisteredClaims{
		Subject:  "not-a-number",
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = NewSigner(secret, time.Hour).Verify(tok)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestVerify_MissingIssuedAt(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = NewSigner(secret, time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

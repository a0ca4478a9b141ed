package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/user"
	"github.com/crickpick/prediction-league/internal/usecase"
)

func newTestAccountStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), "test-secret", 30*time.Minute, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	s := newTestAccountStore(t)
	ctx := context.Background()

	account, err := s.Register(ctx, "riya", "secret123", user.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.PasswordHash == "secret123" {
		t.Fatal("password stored in plain text")
	}

	token, principal, err := s.Authenticate(ctx, "riya", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if principal.Username != "riya" || principal.Role != user.RoleUser {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	verified, err := s.VerifyAccessToken(ctx, token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if verified != principal {
		t.Fatalf("verified principal %+v != issued %+v", verified, principal)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	t.Parallel()

	s := newTestAccountStore(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "riya", "secret123", user.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := s.Authenticate(ctx, "riya", "wrong"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := s.Authenticate(ctx, "ghost", "secret123"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}

func TestRegister_RejectsDuplicate(t *testing.T) {
	t.Parallel()

	s := newTestAccountStore(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "riya", "secret123", user.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := s.Register(ctx, "riya", "other-secret", user.RoleUser); !errors.Is(err, user.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	t.Parallel()

	s := newTestAccountStore(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "riya", "secret123", user.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	token, _, err := s.Authenticate(ctx, "riya", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	s.now = func() time.Time { return issued.Add(31 * time.Minute) }
	if _, err := s.VerifyAccessToken(ctx, token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	t.Parallel()

	s := newTestAccountStore(t)
	ctx := context.Background()

	if err := s.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := s.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	_, principal, err := s.Authenticate(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("authenticate admin: %v", err)
	}
	if !principal.IsAdmin() {
		t.Fatalf("expected admin role, got %q", principal.Role)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir, "test-secret", 30*time.Minute, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if _, err := s.Register(ctx, "riya", "secret123", user.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	reopened, err := Open(dir, "test-secret", 30*time.Minute, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, _, err := reopened.Authenticate(ctx, "riya", "secret123"); err != nil {
		t.Fatalf("authenticate after reopen: %v", err)
	}
}

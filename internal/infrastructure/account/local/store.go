// Package local implements a file-backed account store issuing HS256
// access tokens. It replaces an external identity provider for the
// single-host deployments this game runs on.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/crickpick/prediction-league/internal/domain/user"
	"github.com/crickpick/prediction-league/internal/platform/logging"
	"github.com/crickpick/prediction-league/internal/usecase"
)

const usersFile = "users.json"

// Store keeps accounts in users.json under the data dir, bcrypt-hashed.
type Store struct {
	mu       sync.RWMutex
	path     string
	secret   []byte
	tokenTTL time.Duration
	logger   *logging.Logger
	accounts map[string]user.Account
	now      func() time.Time
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Open loads the account file from dir, creating an empty store when the
// file does not exist yet.
func Open(dir, secret string, tokenTTL time.Duration, logger *logging.Logger) (*Store, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, crerr.New("token secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create data dir %s", dir)
	}

	s := &Store{
		path:     filepath.Join(dir, usersFile),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
		accounts: make(map[string]user.Account),
		now:      time.Now,
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, crerr.Wrapf(err, "read %s", s.path)
		}
		return s, nil
	}
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &s.accounts); err != nil {
			return nil, crerr.Wrapf(err, "decode %s", s.path)
		}
	}
	return s, nil
}

// Register creates an account with the given role and persists the file.
func (s *Store) Register(ctx context.Context, username, password, role string) (user.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return user.Account{}, fmt.Errorf("%w: username is required", usecase.ErrInvalidInput)
	}
	if len(password) < 6 {
		return user.Account{}, fmt.Errorf("%w: password must be at least 6 characters", usecase.ErrInvalidInput)
	}
	if role != user.RoleAdmin {
		role = user.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.Account{}, crerr.Wrap(err, "hash password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[username]; exists {
		return user.Account{}, fmt.Errorf("register %s: %w", username, user.ErrAlreadyRegistered)
	}

	account := user.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now(),
	}
	next := make(map[string]user.Account, len(s.accounts)+1)
	for name, a := range s.accounts {
		next[name] = a
	}
	next[username] = account

	if err := s.persist(next); err != nil {
		return user.Account{}, err
	}
	s.accounts = next

	s.logger.InfoContext(ctx, "account registered", "username", username, "role", role)
	return account, nil
}

// EnsureAdmin creates the bootstrap admin account when it is missing.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string) error {
	s.mu.RLock()
	_, exists := s.accounts[strings.TrimSpace(username)]
	s.mu.RUnlock()
	if exists {
		return nil
	}

	_, err := s.Register(ctx, username, password, user.RoleAdmin)
	if err != nil && crerr.Is(err, user.ErrAlreadyRegistered) {
		return nil
	}
	return err
}

// Authenticate checks the password and issues a signed access token.
func (s *Store) Authenticate(ctx context.Context, username, password string) (string, user.Principal, error) {
	username = strings.TrimSpace(username)

	s.mu.RLock()
	account, exists := s.accounts[username]
	s.mu.RUnlock()
	if !exists {
		return "", user.Principal{}, fmt.Errorf("%w: unknown username or wrong password", usecase.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", user.Principal{}, fmt.Errorf("%w: unknown username or wrong password", usecase.ErrUnauthorized)
	}

	now := s.now()
	claims := accessClaims{
		Role: account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", user.Principal{}, crerr.Wrap(err, "sign access token")
	}

	s.logger.InfoContext(ctx, "login succeeded", "username", account.Username)
	return token, user.Principal{Username: account.Username, Role: account.Role}, nil
}

// VerifyAccessToken parses and validates a bearer token.
func (s *Store) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, crerr.Newf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	return user.Principal{Username: claims.Subject, Role: claims.Role}, nil
}

func (s *Store) persist(accounts map[string]user.Account) error {
	raw, err := sonic.Marshal(accounts)
	if err != nil {
		return crerr.Wrap(err, "encode accounts")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return crerr.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return crerr.Wrapf(err, "replace %s", s.path)
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/crickpick/prediction-league/internal/domain/user"
)

// AccountStore abstracts the credential backend used for login.
type AccountStore interface {
	Register(ctx context.Context, username, password, role string) (user.Account, error)
	Authenticate(ctx context.Context, username, password string) (string, user.Principal, error)
}

// AuthService handles self-service registration and login.
type AuthService struct {
	accounts AccountStore
}

func NewAuthService(accounts AccountStore) *AuthService {
	return &AuthService{accounts: accounts}
}

type LoginResult struct {
	Token     string
	Principal user.Principal
}

func (s *AuthService) Register(ctx context.Context, username, password string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	account, err := s.accounts.Register(ctx, username, password, user.RoleUser)
	if err != nil {
		return user.Principal{}, fmt.Errorf("register account: %w", err)
	}
	return user.Principal{Username: account.Username, Role: account.Role}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	token, principal, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}
	return LoginResult{Token: token, Principal: principal}, nil
}

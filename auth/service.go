package auth

import (
	"context"
	"errors"
	"time"

	"github.com/drimcity/drimcity-go/accounts"
	"github.com/drimcity/drimcity-go/apperror"
)

// Service implements account creation and authentication on top of the
// account store, the password hasher and the token issuer.
type Service struct {
	store  accounts.Store
	hasher *PasswordHasher
	issuer *JwtIssuer
}

// NewService creates an auth Service.
func NewService(store accounts.Store, hasher *PasswordHasher, issuer *JwtIssuer) *Service {
	return &Service{store: store, hasher: hasher, issuer: issuer}
}

// CreateAccount registers a new account. The login is lowercased before the
// uniqueness check and storage, so "Sam" and "sam" are the same account. A
// duplicate login is a logic conflict whether it is found by the lookup or by
// the unique index on a concurrent insert.
func (s *Service) CreateAccount(ctx context.Context, login, password string) (*accounts.Account, error) {
	login = normalizeLogin(login)

	_, err := s.store.FindByLogin(ctx, login)
	switch {
	case err == nil:
		return nil, apperror.NewLogicConflictError("Account already exists", CodeAccountAlreadyExists)
	case !errors.Is(err, accounts.ErrNotFound):
		return nil, apperror.NewDatabaseError("failed to check login uniqueness", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	account := &accounts.Account{
		Login:        login,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, account); err != nil {
		if errors.Is(err, accounts.ErrLoginTaken) {
			return nil, apperror.NewLogicConflictError("Account already exists", CodeAccountAlreadyExists)
		}
		return nil, apperror.NewDatabaseError("failed to create account", err)
	}

	return account, nil
}

// Authenticate verifies credentials and issues a bearer token. An unknown
// login and a wrong password produce the same error, so callers cannot
// enumerate logins.
func (s *Service) Authenticate(ctx context.Context, login, password string) (string, error) {
	account, err := s.store.FindByLogin(ctx, normalizeLogin(login))
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return "", apperror.NewUnauthorizedError("Invalid credentials", nil)
		}
		return "", apperror.NewDatabaseError("failed to get account", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return "", apperror.NewUnauthorizedError("Invalid credentials", nil)
	}

	token, err := s.issuer.Generate(account.ID, account.Login)
	if err != nil {
		return "", apperror.NewInternalError("failed to issue token", err)
	}

	return token, nil
}

package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors returned by Store implementations. Services translate them
// into application errors at the business-logic layer.
var (
	// ErrNotFound means no account matches the given login.
	ErrNotFound = errors.New("account not found")
	// ErrLoginTaken means the unique index on login rejected the insert. This
	// is how a concurrent duplicate-login creation surfaces: the datastore's
	// own constraint is the source of truth for uniqueness.
	ErrLoginTaken = errors.New("login already taken")
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// Store is the datastore boundary for accounts.
type Store interface {
	// Insert persists a new account and fills in its generated ID. Returns
	// ErrLoginTaken when the login's unique index rejects the row.
	Insert(ctx context.Context, account *Account) error
	// FindByLogin returns the account with the given (already lowercased)
	// login, or ErrNotFound.
	FindByLogin(ctx context.Context, login string) (*Account, error)
}

// PgStore is the PostgreSQL-backed Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PgStore on the given pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Insert(ctx context.Context, account *Account) error {
	query := `INSERT INTO accounts (login, password_hash, created_at)
              VALUES ($1, $2, $3)
              RETURNING id`
	err := s.pool.QueryRow(ctx, query, account.Login, account.PasswordHash, account.CreatedAt).
		Scan(&account.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrLoginTaken
		}
		return err
	}
	return nil
}

func (s *PgStore) FindByLogin(ctx context.Context, login string) (*Account, error) {
	var account Account
	query := `SELECT id, login, password_hash, created_at FROM accounts WHERE login = $1`
	err := s.pool.QueryRow(ctx, query, login).
		Scan(&account.ID, &account.Login, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

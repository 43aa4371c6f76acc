// Package storage is the persistence adapter for accounts. Driver error
// codes stay in here: callers branch on ErrNotFound and ErrDuplicateEmail,
// never on sql.ErrNoRows or Postgres error codes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"negar/internal/models"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const uniqueViolation = "23505"

type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
}

type PostgresAccountStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPostgresAccountStore(db *sql.DB, logger zerolog.Logger) *PostgresAccountStore {
	return &PostgresAccountStore{
		db:     db,
		logger: logger,
	}
}

// FindByEmail returns the live account with the given email, ignoring
// soft-deleted rows. The lookup is case-insensitive.
func (s *PostgresAccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, phone, brand_name, status, credits, created_at
		 FROM accounts WHERE lower(email) = $1 AND deleted_at IS NULL`,
		strings.ToLower(email),
	).Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.Phone, &account.BrandName, &account.Status, &account.Credits,
		&account.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying account by email")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &account, nil
}

func (s *PostgresAccountStore) Create(ctx context.Context, account *models.Account) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO accounts (id, name, email, password_hash, phone, brand_name, status, credits)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		account.ID, account.Name, account.Email, account.PasswordHash,
		account.Phone, account.BrandName, account.Status, account.Credits,
	).Scan(&account.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return ErrDuplicateEmail
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error inserting account")
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

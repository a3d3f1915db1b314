package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyquest/internal/modules/identity/domain"
	identityout "studyquest/internal/modules/identity/port/out"
	apperrors "studyquest/internal/platform/errors"
)

type SQLiteAccountStore struct {
	db *sql.DB
}

func NewSQLiteAccountStore(db *sql.DB) (identityout.AccountStore, error) {
	store := &SQLiteAccountStore{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS accounts (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`
	if _, err := db.ExecContext(context.Background(), ddl); err != nil {
		return nil, fmt.Errorf("create accounts table: %w", err)
	}
	return store, nil
}

func (s *SQLiteAccountStore) Create(ctx context.Context, account domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		account.ID, account.Email, account.PasswordHash, account.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountExists, account.Email)
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *SQLiteAccountStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	var (
		account domain.Account
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE email = ?`, email,
	).Scan(&account.ID, &account.Email, &account.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, email)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("find account: %w", err)
	}
	if at, err := time.Parse(time.RFC3339, created); err == nil {
		account.CreatedAt = at
	}
	return account, nil
}

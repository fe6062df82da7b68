package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

const accountColumns = `id, user_id, account_number, balance::text, currency, status, version, created_at, updated_at`

// GetAccount loads one account by id.
func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	account, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.AccountNotFoundError{AccountID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", id, err)
	}
	return account, nil
}

// SaveAccount persists a mutated account, conditioned on the version observed
// at load time. A zero row count means another workflow advanced the version
// first, which surfaces as a distinct, retryable conflict.
func (s *Store) SaveAccount(ctx context.Context, a *domain.Account) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE accounts
		SET balance = $1, status = $2, version = version + 1, updated_at = now()
		WHERE id = $3 AND version = $4`,
		a.Balance.String(), a.Status, a.ID, a.Version)
	if err != nil {
		return fmt.Errorf("save account %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.VersionConflictError{AccountID: a.ID}
	}
	a.Version++
	return nil
}

// CreateAccount inserts a new account. Used by the seed loader.
func (s *Store) CreateAccount(ctx context.Context, a *domain.Account) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO accounts (id, user_id, account_number, balance, currency, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.AccountNumber, a.Balance.String(), a.Currency, a.Status, a.Version)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// ListAccountsByUser returns the active accounts owned by one user.
func (s *Store) ListAccountsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE user_id = $1 AND status = 'ACTIVE'
		 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListAccounts pages over every account, returning the page and the total
// count. Admin use only.
func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a       domain.Account
		balance string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.AccountNumber, &balance, &a.Currency,
		&a.Status, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	return &a, nil
}

func collectAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

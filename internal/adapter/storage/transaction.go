package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

// SaveTransaction appends one immutable ledger entry. There is no update
// counterpart on purpose.
func (s *Store) SaveTransaction(ctx context.Context, t *domain.Transaction) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO transactions
			(id, account_id, card_id, transaction_type, amount, fee, balance_after,
			 related_account_id, related_transaction_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.AccountID, t.CardID, t.Type, t.Amount.String(), t.Fee.String(),
		t.BalanceAfter.String(), t.RelatedAccountID, t.RelatedTransactionID, t.Description)
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the most recent ledger entries of an account,
// newest first.
func (s *Store) ListTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]*domain.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, account_id, card_id, transaction_type, amount::text, fee::text,
		       balance_after::text, related_account_id, related_transaction_id,
		       COALESCE(description, ''), created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, t)
	}
	return entries, rows.Err()
}

func scanTransaction(rows pgx.Rows) (*domain.Transaction, error) {
	var (
		t                  domain.Transaction
		amount, fee, after string
	)
	err := rows.Scan(&t.ID, &t.AccountID, &t.CardID, &t.Type, &amount, &fee,
		&after, &t.RelatedAccountID, &t.RelatedTransactionID, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	if t.Fee, err = decimal.NewFromString(fee); err != nil {
		return nil, err
	}
	if t.BalanceAfter, err = decimal.NewFromString(after); err != nil {
		return nil, err
	}
	return &t, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

// GetCard loads one card by id.
func (s *Store) GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var (
		c     domain.Card
		month int
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, account_id, card_number, expiry_year, expiry_month, cvv_hash,
		       status, card_type, created_at, updated_at
		FROM cards WHERE id = $1`, id).
		Scan(&c.ID, &c.AccountID, &c.CardNumber, &c.Expiry.Year, &month,
			&c.CVVHash, &c.Status, &c.Type, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.CardNotFoundError{CardID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load card %s: %w", id, err)
	}
	c.Expiry.Month = time.Month(month)
	return &c, nil
}

// CreateCard inserts a new card. Used by the seed loader.
func (s *Store) CreateCard(ctx context.Context, c *domain.Card) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO cards (id, account_id, card_number, expiry_year, expiry_month, cvv_hash, status, card_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.AccountID, c.CardNumber, c.Expiry.Year, int(c.Expiry.Month),
		c.CVVHash, c.Status, c.Type)
	if err != nil {
		return fmt.Errorf("create card: %w", err)
	}
	return nil
}

// Package storage is the Postgres adapter. One Store type implements every
// persistence port the services define; RunInTx hands the workflow a view of
// the same Store bound to a single pgx transaction.
package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlejoJamC/banking-account/internal/core/service"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same repository methods run pooled or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	db   querier
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// RunInTx executes fn with a Store bound to one database transaction.
// It commits when fn returns nil and rolls back otherwise, so a workflow
// either persists completely or not at all.
func (s *Store) RunInTx(ctx context.Context, fn func(service.Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&Store{pool: s.pool, db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

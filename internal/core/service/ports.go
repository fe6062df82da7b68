// Package service holds the application workflows. Each workflow loads
// entities through a Store, lets the domain objects validate and mutate
// themselves, then persists the results and the matching ledger entries.
// The whole body of a workflow runs inside one database transaction so a
// failure partway never leaves a half-applied mutation behind.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

// Store is the persistence port a workflow runs against. Implementations
// return domain.AccountNotFoundError / domain.CardNotFoundError for missing
// ids, and SaveAccount must refuse with domain.VersionConflictError when the
// stored version no longer matches the loaded one.
type Store interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	SaveAccount(ctx context.Context, account *domain.Account) error
	GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	SaveTransaction(ctx context.Context, tx *domain.Transaction) error
	EnqueueWebhook(ctx context.Context, url string, payload []byte) error
}

// TxStore runs a function with every Store call inside it bound to a single
// database transaction. The transaction commits when fn returns nil and
// rolls back otherwise.
type TxStore interface {
	Store
	RunInTx(ctx context.Context, fn func(Store) error) error
}

// AccountReader serves the read-side account endpoints.
type AccountReader interface {
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
	ListAccountsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, int64, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]*domain.Transaction, error)
}

// UserReader serves the user directory endpoints.
type UserReader interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

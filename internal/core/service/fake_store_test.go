package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

// fakeStore is an in-memory TxStore. It mimics the two behaviors the
// workflows depend on: loads return detached copies, and SaveAccount is a
// compare-and-swap on the version observed at load time. RunInTx serializes
// transactions and rolls the state back when fn fails.
type fakeStore struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]domain.Account
	cards        map[uuid.UUID]domain.Card
	transactions []domain.Transaction
	webhooks     [][]byte

	// conflictOn forces the next SaveAccount for the given account to fail
	// with a version conflict, simulating a concurrent writer.
	conflictOn map[uuid.UUID]bool
}

var _ TxStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:   make(map[uuid.UUID]domain.Account),
		cards:      make(map[uuid.UUID]domain.Card),
		conflictOn: make(map[uuid.UUID]bool),
	}
}

func (f *fakeStore) putAccount(a *domain.Account) { f.accounts[a.ID] = *a }
func (f *fakeStore) putCard(c *domain.Card)       { f.cards[c.ID] = *c }

// storedBalance reads the persisted balance, bypassing any in-flight copies.
func (f *fakeStore) storedBalance(id uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.accounts[id]
	return a.Balance.String()
}

func (f *fakeStore) GetAccount(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, domain.AccountNotFoundError{AccountID: id}
	}
	copy := a
	return &copy, nil
}

func (f *fakeStore) SaveAccount(_ context.Context, a *domain.Account) error {
	if f.conflictOn[a.ID] {
		delete(f.conflictOn, a.ID)
		return domain.VersionConflictError{AccountID: a.ID}
	}
	stored, ok := f.accounts[a.ID]
	if !ok {
		return domain.AccountNotFoundError{AccountID: a.ID}
	}
	if stored.Version != a.Version {
		return domain.VersionConflictError{AccountID: a.ID}
	}
	a.Version++
	f.accounts[a.ID] = *a
	return nil
}

func (f *fakeStore) GetCard(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, domain.CardNotFoundError{CardID: id}
	}
	copy := c
	return &copy, nil
}

func (f *fakeStore) SaveTransaction(_ context.Context, tx *domain.Transaction) error {
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeStore) EnqueueWebhook(_ context.Context, _ string, payload []byte) error {
	f.webhooks = append(f.webhooks, payload)
	return nil
}

func (f *fakeStore) RunInTx(_ context.Context, fn func(Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshotAccounts := make(map[uuid.UUID]domain.Account, len(f.accounts))
	for id, a := range f.accounts {
		snapshotAccounts[id] = a
	}
	snapshotTxs := len(f.transactions)
	snapshotHooks := len(f.webhooks)

	if err := fn(f); err != nil {
		f.accounts = snapshotAccounts
		f.transactions = f.transactions[:snapshotTxs]
		f.webhooks = f.webhooks[:snapshotHooks]
		return err
	}
	return nil
}

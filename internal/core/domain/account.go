package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountClosed    AccountStatus = "CLOSED"
)

// Account is the aggregate the ledger protects. Balance is only ever touched
// through Deposit and Withdraw so the non-negative invariant holds no matter
// which workflow is driving. Version backs the optimistic save: the storage
// layer refuses to persist an account whose stored version moved since load.
type Account struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        AccountStatus   `json:"status"`
	Version       int64           `json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewAccount opens an active account with a zero balance.
func NewAccount(userID uuid.UUID, accountNumber, currency string) *Account {
	return &Account{
		ID:            uuid.New(),
		UserID:        userID,
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		Currency:      currency,
		Status:        AccountActive,
	}
}

// Deposit increases the balance. There is deliberately no status check here:
// whether an inactive account may still receive money is a workflow decision.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw decreases the balance. Every debit in the system, including the
// principal+fee total of a transfer, must come through here; that is what
// keeps the balance from ever going negative.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return InsufficientFundsError{
			AccountID: a.ID,
			Available: a.Balance,
			Requested: amount,
		}
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// IsActive reports whether the account may participate in transfers.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}

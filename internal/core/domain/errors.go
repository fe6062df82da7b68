package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount rejects any mutation with a non-positive amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// AccountNotFoundError means the account id has no matching record.
type AccountNotFoundError struct {
	AccountID uuid.UUID
}

func (e AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.AccountID)
}

// CardNotFoundError means the card id has no matching record.
type CardNotFoundError struct {
	CardID uuid.UUID
}

func (e CardNotFoundError) Error() string {
	return fmt.Sprintf("card %s not found", e.CardID)
}

// CardAccountMismatchError means the card is owned by a different account
// than the one the workflow is operating on.
type CardAccountMismatchError struct {
	CardID    uuid.UUID
	AccountID uuid.UUID
}

func (e CardAccountMismatchError) Error() string {
	return fmt.Sprintf("card %s does not belong to account %s", e.CardID, e.AccountID)
}

// InactiveCardError means the card is blocked or past its expiry.
type InactiveCardError struct {
	CardID uuid.UUID
}

func (e InactiveCardError) Error() string {
	return fmt.Sprintf("card %s is not active", e.CardID)
}

// InactiveAccountError means the account is suspended or closed.
type InactiveAccountError struct {
	AccountID uuid.UUID
}

func (e InactiveAccountError) Error() string {
	return fmt.Sprintf("account %s is not active", e.AccountID)
}

// SelfTransferError means source and destination accounts are the same.
type SelfTransferError struct {
	AccountID uuid.UUID
}

func (e SelfTransferError) Error() string {
	return fmt.Sprintf("cannot transfer from account %s to itself", e.AccountID)
}

// InsufficientFundsError carries the diagnostics a caller needs to show the
// user what was missing. Requested is the full debit including any fee.
type InsufficientFundsError struct {
	AccountID uuid.UUID
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %s has insufficient funds: available %s, requested %s",
		e.AccountID, e.Available, e.Requested)
}

// Shortfall is how much the balance fell short of the requested debit.
func (e InsufficientFundsError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// VersionConflictError means a concurrent workflow saved the same account
// between our load and our save. Retryable by the caller after a reload.
type VersionConflictError struct {
	AccountID uuid.UUID
}

func (e VersionConflictError) Error() string {
	return fmt.Sprintf("account %s was modified concurrently", e.AccountID)
}

// UserNotFoundError means the user id or email has no matching record.
type UserNotFoundError struct {
	UserID uuid.UUID
	Email  string
}

func (e UserNotFoundError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("user with email %q not found", e.Email)
	}
	return fmt.Sprintf("user %s not found", e.UserID)
}

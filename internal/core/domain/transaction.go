package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionTransfer   TransactionType = "TRANSFER"
)

// Transaction is one immutable ledger entry: a historical fact about a
// balance-affecting event. It is never updated or deleted after creation.
//
// Amount is the principal moved, excluding the fee. BalanceAfter snapshots the
// account balance right after the mutation. For a transfer, the TRANSFER entry
// on the source points at the destination via RelatedAccountID, and the
// DEPOSIT entry on the destination points back at the TRANSFER entry via
// RelatedTransactionID.
type Transaction struct {
	ID                   uuid.UUID       `json:"id"`
	AccountID            uuid.UUID       `json:"account_id"`
	CardID               uuid.UUID       `json:"card_id"`
	Type                 TransactionType `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	Fee                  decimal.Decimal `json:"fee"`
	BalanceAfter         decimal.Decimal `json:"balance_after"`
	RelatedAccountID     *uuid.UUID      `json:"related_account_id,omitempty"`
	RelatedTransactionID *uuid.UUID      `json:"related_transaction_id,omitempty"`
	Description          string          `json:"description,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// NewWithdrawal records a single-account debit.
func NewWithdrawal(account *Account, card *Card, amount, fee decimal.Decimal) *Transaction {
	return &Transaction{
		ID:           uuid.New(),
		AccountID:    account.ID,
		CardID:       card.ID,
		Type:         TransactionWithdrawal,
		Amount:       amount,
		Fee:          fee,
		BalanceAfter: account.Balance,
	}
}

// NewTransferOut records the source side of a transfer, pointing at the
// destination account.
func NewTransferOut(source *Account, card *Card, amount, fee decimal.Decimal, destination *Account) *Transaction {
	relatedAccount := destination.ID
	return &Transaction{
		ID:               uuid.New(),
		AccountID:        source.ID,
		CardID:           card.ID,
		Type:             TransactionTransfer,
		Amount:           amount,
		Fee:              fee,
		BalanceAfter:     source.Balance,
		RelatedAccountID: &relatedAccount,
	}
}

// NewTransferIn records the destination side of a transfer, linked back to
// its originating TRANSFER entry. The fee stays on the source side, so the
// deposit entry always carries a zero fee.
func NewTransferIn(destination *Account, amount decimal.Decimal, transferOut *Transaction) *Transaction {
	relatedTx := transferOut.ID
	return &Transaction{
		ID:                   uuid.New(),
		AccountID:            destination.ID,
		CardID:               transferOut.CardID,
		Type:                 TransactionDeposit,
		Amount:               amount,
		Fee:                  decimal.Zero,
		BalanceAfter:         destination.Balance,
		RelatedTransactionID: &relatedTx,
	}
}

// TotalAmount is the full debit the entry represents: principal plus fee.
func (t *Transaction) TotalAmount() decimal.Decimal {
	return t.Amount.Add(t.Fee)
}

package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

// TransferService moves money between two accounts using a card held by the
// source account. The fee is debited from the source together with the
// principal and is never credited to the destination.
type TransferService struct {
	store      TxStore
	webhookURL string
}

// NewTransferService wires the transfer workflow. webhookURL may be empty,
// in which case no completion notification is enqueued.
func NewTransferService(store TxStore, webhookURL string) *TransferService {
	return &TransferService{store: store, webhookURL: webhookURL}
}

// TransferResult is the projection returned to the caller on success.
type TransferResult struct {
	TransferTransactionID uuid.UUID       `json:"transfer_transaction_id"`
	DepositTransactionID  uuid.UUID       `json:"deposit_transaction_id"`
	FromAccountID         uuid.UUID       `json:"from_account_id"`
	ToAccountID           uuid.UUID       `json:"to_account_id"`
	Amount                decimal.Decimal `json:"amount"`
	Fee                   decimal.Decimal `json:"fee"`
	FromBalanceAfter      decimal.Decimal `json:"from_balance_after"`
	ToBalanceAfter        decimal.Decimal `json:"to_balance_after"`
}

// Transfer runs the transfer workflow: load everything, validate in order
// (existence, card ownership, card state, self-transfer, both account
// states), debit principal+fee from the source, credit the principal to the
// destination, persist both accounts, and record the two cross-linked ledger
// entries. All inside one database transaction.
func (s *TransferService) Transfer(ctx context.Context, fromID, toID, cardID uuid.UUID, amount decimal.Decimal) (*TransferResult, error) {
	var result *TransferResult

	err := s.store.RunInTx(ctx, func(store Store) error {
		from, err := store.GetAccount(ctx, fromID)
		if err != nil {
			return err
		}
		to, err := store.GetAccount(ctx, toID)
		if err != nil {
			return err
		}
		card, err := store.GetCard(ctx, cardID)
		if err != nil {
			return err
		}

		if card.AccountID != from.ID {
			return domain.CardAccountMismatchError{CardID: card.ID, AccountID: from.ID}
		}
		if !card.IsUsable(time.Now()) {
			return domain.InactiveCardError{CardID: card.ID}
		}
		if from.ID == to.ID {
			return domain.SelfTransferError{AccountID: from.ID}
		}
		if !from.IsActive() {
			return domain.InactiveAccountError{AccountID: from.ID}
		}
		if !to.IsActive() {
			return domain.InactiveAccountError{AccountID: to.ID}
		}

		fee := card.CalculateFee(amount)
		total := amount.Add(fee)

		if err := from.Withdraw(total); err != nil {
			return err
		}
		if err := to.Deposit(amount); err != nil {
			return err
		}

		if err := store.SaveAccount(ctx, from); err != nil {
			return err
		}
		if err := store.SaveAccount(ctx, to); err != nil {
			return err
		}

		transferOut := domain.NewTransferOut(from, card, amount, fee, to)
		if err := store.SaveTransaction(ctx, transferOut); err != nil {
			return err
		}
		transferIn := domain.NewTransferIn(to, amount, transferOut)
		if err := store.SaveTransaction(ctx, transferIn); err != nil {
			return err
		}

		result = &TransferResult{
			TransferTransactionID: transferOut.ID,
			DepositTransactionID:  transferIn.ID,
			FromAccountID:         from.ID,
			ToAccountID:           to.ID,
			Amount:                amount,
			Fee:                   fee,
			FromBalanceAfter:      from.Balance,
			ToBalanceAfter:        to.Balance,
		}

		// Enqueued inside the same transaction: the notification job exists
		// exactly when the transfer does.
		if s.webhookURL != "" {
			return s.enqueueNotification(ctx, store, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("transfer completed",
		"transfer_transaction_id", result.TransferTransactionID,
		"from_account_id", result.FromAccountID,
		"to_account_id", result.ToAccountID,
		"amount", result.Amount,
		"fee", result.Fee,
	)
	return result, nil
}

func (s *TransferService) enqueueNotification(ctx context.Context, store Store, result *TransferResult) error {
	payload, err := json.Marshal(map[string]any{
		"event": "transfer.completed",
		"data": map[string]any{
			"transfer_transaction_id": result.TransferTransactionID,
			"deposit_transaction_id":  result.DepositTransactionID,
			"from_account_id":         result.FromAccountID,
			"to_account_id":           result.ToAccountID,
			"amount":                  result.Amount,
			"fee":                     result.Fee,
			"timestamp":               time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	return store.EnqueueWebhook(ctx, s.webhookURL, payload)
}

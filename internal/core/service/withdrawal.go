package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

// WithdrawalService debits a single account through its card.
type WithdrawalService struct {
	store TxStore
}

func NewWithdrawalService(store TxStore) *WithdrawalService {
	return &WithdrawalService{store: store}
}

// WithdrawalResult is the projection returned to the caller on success.
type WithdrawalResult struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	CardID        uuid.UUID       `json:"card_id"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// Withdraw runs the withdrawal workflow. Validation order is fixed:
// existence, then card ownership and state, then account state, then the
// balance check inside Account.Withdraw. The first failure short-circuits,
// so the caller always sees the most specific error.
func (s *WithdrawalService) Withdraw(ctx context.Context, accountID, cardID uuid.UUID, amount decimal.Decimal) (*WithdrawalResult, error) {
	var result *WithdrawalResult

	err := s.store.RunInTx(ctx, func(store Store) error {
		account, err := store.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}
		card, err := store.GetCard(ctx, cardID)
		if err != nil {
			return err
		}

		if card.AccountID != account.ID {
			return domain.CardAccountMismatchError{CardID: card.ID, AccountID: account.ID}
		}
		if !card.IsUsable(time.Now()) {
			return domain.InactiveCardError{CardID: card.ID}
		}
		if !account.IsActive() {
			return domain.InactiveAccountError{AccountID: account.ID}
		}

		fee := card.CalculateFee(amount)
		total := amount.Add(fee)

		if err := account.Withdraw(total); err != nil {
			return err
		}
		if err := store.SaveAccount(ctx, account); err != nil {
			return err
		}

		entry := domain.NewWithdrawal(account, card, amount, fee)
		if err := store.SaveTransaction(ctx, entry); err != nil {
			return err
		}

		result = &WithdrawalResult{
			TransactionID: entry.ID,
			AccountID:     account.ID,
			CardID:        card.ID,
			Amount:        amount,
			Fee:           fee,
			BalanceAfter:  account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("withdrawal completed",
		"transaction_id", result.TransactionID,
		"account_id", result.AccountID,
		"amount", result.Amount,
		"fee", result.Fee,
	)
	return result, nil
}

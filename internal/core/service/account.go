package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

// AccountService serves the read-side account endpoints: balances per user,
// the admin listing, and transaction history.
type AccountService struct {
	reader AccountReader
}

func NewAccountService(reader AccountReader) *AccountService {
	return &AccountService{reader: reader}
}

// AccountBalance is the balance projection for listing endpoints.
type AccountBalance struct {
	UserID        uuid.UUID       `json:"user_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
}

// AccountPage is one page of the admin listing.
type AccountPage struct {
	Accounts []AccountBalance `json:"accounts"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
	Total    int64            `json:"total"`
}

// BalancesByUser returns the active accounts of one user.
func (s *AccountService) BalancesByUser(ctx context.Context, userID uuid.UUID) ([]AccountBalance, error) {
	exists, err := s.reader.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.UserNotFoundError{UserID: userID}
	}

	accounts, err := s.reader.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := make([]AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		balances = append(balances, toBalance(a))
	}
	return balances, nil
}

// AllAccounts pages over every account. Admin use only.
func (s *AccountService) AllAccounts(ctx context.Context, page, size int) (*AccountPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 1000 {
		size = 100
	}

	accounts, total, err := s.reader.ListAccounts(ctx, size, page*size)
	if err != nil {
		return nil, err
	}

	out := &AccountPage{
		Accounts: make([]AccountBalance, 0, len(accounts)),
		Page:     page,
		Size:     size,
		Total:    total,
	}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, toBalance(a))
	}
	return out, nil
}

// History returns the most recent ledger entries of an account, newest first.
func (s *AccountService) History(ctx context.Context, accountID uuid.UUID, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.reader.ListTransactions(ctx, accountID, limit)
}

func toBalance(a *domain.Account) AccountBalance {
	return AccountBalance{
		UserID:        a.UserID,
		AccountID:     a.ID,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		Currency:      a.Currency,
	}
}

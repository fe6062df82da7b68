package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
	"github.com/AlejoJamC/banking-account/internal/core/security"
)

// SeedLocalData loads a small fixed data set for local development: three
// users, four accounts, a mix of debit and credit cards. It is idempotent
// and skips entirely when any user already exists.
func (s *Store) SeedLocalData(ctx context.Context) error {
	count, err := s.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("seed data already present, skipping")
		return nil
	}

	slog.Info("loading seed data for local development")

	type seedAccount struct {
		number   string
		cardType domain.CardType
		expiry   domain.Expiry
		balance  string
	}
	seeds := []struct {
		email      string
		fullName   string
		nationalID string
		accounts   []seedAccount
	}{
		{
			email: "mara.jansen@example.com", fullName: "Mara Jansen", nationalID: "493817265",
			accounts: []seedAccount{
				{"NL91BANK0417164300", domain.CardDebit, domain.Expiry{Year: 2028, Month: time.March}, "1000.00"},
				{"NL91BANK0417164311", domain.CardCredit, domain.Expiry{Year: 2030, Month: time.September}, "2500.00"},
			},
		},
		{
			email: "tom.verhoeven@example.com", fullName: "Tom Verhoeven", nationalID: "582930174",
			accounts: []seedAccount{
				{"NL62BANK0862154477", domain.CardDebit, domain.Expiry{Year: 2027, Month: time.December}, "500.00"},
			},
		},
		{
			email: "lena.visser@example.com", fullName: "Lena Visser", nationalID: "716204839",
			accounts: []seedAccount{
				{"NL35BANK0293847561", domain.CardCredit, domain.Expiry{Year: 2029, Month: time.June}, "750.00"},
			},
		},
	}

	for _, su := range seeds {
		user := domain.NewUser(su.email, su.fullName, su.nationalID)
		if err := s.CreateUser(ctx, user); err != nil {
			return err
		}

		for _, sa := range su.accounts {
			account := domain.NewAccount(user.ID, sa.number, "EUR")
			account.Balance = domain.NewAmount(sa.balance)
			if err := s.CreateAccount(ctx, account); err != nil {
				return err
			}

			cardNumber, err := security.GenerateCardNumber("4")
			if err != nil {
				return err
			}
			card := domain.NewCard(account.ID, sa.cardType, cardNumber, sa.expiry, security.HashCVV("000"))
			if err := s.CreateCard(ctx, card); err != nil {
				return err
			}

			slog.Info("seeded account",
				"user", user.Email,
				"account_id", account.ID,
				"card_type", card.Type,
				"balance", account.Balance,
			)
		}
	}

	count, err = s.CountUsers(ctx)
	if err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("seed data loading completed, %d users", count))
	return nil
}

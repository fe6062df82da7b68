package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CardType string

const (
	CardDebit  CardType = "DEBIT"
	CardCredit CardType = "CREDIT"
)

type CardStatus string

const (
	CardActive  CardStatus = "ACTIVE"
	CardBlocked CardStatus = "BLOCKED"
	CardExpired CardStatus = "EXPIRED"
)

// creditFeeRate is the fee charged on credit card operations: 1% of principal.
var creditFeeRate = decimal.NewFromFloat(0.01)

// Expiry is a card's year+month expiry. The card is usable through the last
// day of that month.
type Expiry struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (e Expiry) String() string {
	return fmt.Sprintf("%02d/%02d", int(e.Month), e.Year%100)
}

// ParseExpiry reads the MM/YY format cards are printed with.
func ParseExpiry(s string) (Expiry, error) {
	if len(s) != 5 || s[2] != '/' {
		return Expiry{}, fmt.Errorf("invalid expiry %q, want MM/YY", s)
	}
	month, err := strconv.Atoi(s[:2])
	if err != nil || month < 1 || month > 12 {
		return Expiry{}, fmt.Errorf("invalid expiry month in %q", s)
	}
	year, err := strconv.Atoi(s[3:])
	if err != nil {
		return Expiry{}, fmt.Errorf("invalid expiry year in %q", s)
	}
	return Expiry{Year: 2000 + year, Month: time.Month(month)}, nil
}

// Card is the payment instrument tied 1:1 to an account. Type selects the fee
// policy; there is no other behavioral difference between debit and credit.
// AccountID never changes after issue.
type Card struct {
	ID         uuid.UUID  `json:"id"`
	AccountID  uuid.UUID  `json:"account_id"`
	CardNumber string     `json:"card_number"`
	Expiry     Expiry     `json:"expiry"`
	CVVHash    string     `json:"-"`
	Status     CardStatus `json:"status"`
	Type       CardType   `json:"type"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewCard(accountID uuid.UUID, cardType CardType, cardNumber string, expiry Expiry, cvvHash string) *Card {
	return &Card{
		ID:         uuid.New(),
		AccountID:  accountID,
		CardNumber: cardNumber,
		Expiry:     expiry,
		CVVHash:    cvvHash,
		Status:     CardActive,
		Type:       cardType,
	}
}

// CalculateFee returns the fee owed for moving the given principal with this
// card. Debit cards are free; credit cards pay 1%, rounded half-up to the
// money scale.
func (c *Card) CalculateFee(amount decimal.Decimal) decimal.Decimal {
	switch c.Type {
	case CardCredit:
		return amount.Mul(creditFeeRate).Round(MoneyScale)
	default:
		return decimal.Zero
	}
}

// IsExpired derives expiry from the current date; the stored status field may
// still read ACTIVE for a card that has aged out.
func (c *Card) IsExpired(now time.Time) bool {
	if now.Year() != c.Expiry.Year {
		return now.Year() > c.Expiry.Year
	}
	return now.Month() > c.Expiry.Month
}

// IsUsable reports whether the card can authorize an operation right now.
func (c *Card) IsUsable(now time.Time) bool {
	return c.Status == CardActive && !c.IsExpired(now)
}

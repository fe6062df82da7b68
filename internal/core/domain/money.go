package domain

import "github.com/shopspring/decimal"

// MoneyScale is the fixed number of decimal places for every stored or
// computed monetary value. Balances, amounts and fees are normalized to this
// scale so repeated operations never accumulate rounding drift.
const MoneyScale = 4

// NewAmount builds a scale-4 decimal from a string like "100.00".
// It panics on malformed input, so it is meant for seeds and tests; request
// amounts go through decimal.Decimal's own JSON unmarshalling instead.
func NewAmount(s string) decimal.Decimal {
	return decimal.RequireFromString(s).Round(MoneyScale)
}

// RoundMoney normalizes a value to the money scale using half-up rounding,
// the same rule the fee policy applies.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

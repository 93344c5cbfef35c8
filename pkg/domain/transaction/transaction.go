// Package transaction holds the rules that guard financial records:
// amounts are positive with two fractional digits and dates may not
// run more than MaxFutureWindow ahead of the clock.
package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the direction of money flow.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

const (
	// AmountScale is the number of fractional digits stored for an amount.
	AmountScale int32 = 2
	// MaxFutureWindow bounds how far ahead of now a transaction may be dated.
	MaxFutureWindow = 30 * 24 * time.Hour
)

// MaxAmount is the largest value a NUMERIC(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAmountNotPositive   = errors.New("amount must be greater than 0")
	ErrAmountTooLarge      = errors.New("amount must not exceed 99999999.99")
	ErrDateTooFarAhead     = errors.New("transaction date cannot be more than 30 days in the future")
	ErrInvalidType         = errors.New("transaction type must be income or expense")
)

// NormalizeAmount rounds to the stored scale.
func NormalizeAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(AmountScale)
}

// ValidateAmount checks the rounded amount against the stored bounds.
func ValidateAmount(amount decimal.Decimal) error {
	amount = NormalizeAmount(amount)
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if amount.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// ValidateDate rejects dates strictly later than now+MaxFutureWindow.
func ValidateDate(date, now time.Time) error {
	if date.After(now.Add(MaxFutureWindow)) {
		return ErrDateTooFarAhead
	}
	return nil
}

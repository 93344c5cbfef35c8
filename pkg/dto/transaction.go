package dto

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/shopspring/decimal"
)

// TransactionCreate carries a validated transaction bound to its owner.
type TransactionCreate struct {
	UserID      uint
	CategoryID  *uint
	Amount      decimal.Decimal
	Description *string
	Type        transaction.Type
	Date        time.Time
}

// TransactionUpdate is a sparse patch; nil fields are left untouched.
type TransactionUpdate struct {
	CategoryID  *uint
	Amount      *decimal.Decimal
	Description *string
	Type        *transaction.Type
	Date        *time.Time
}

func (u TransactionUpdate) IsEmpty() bool {
	return u.CategoryID == nil &&
		u.Amount == nil &&
		u.Description == nil &&
		u.Type == nil &&
		u.Date == nil
}

// TransactionRead represents a stored transaction.
type TransactionRead struct {
	ID          uint
	UserID      uint
	CategoryID  *uint
	Amount      decimal.Decimal
	Description *string
	Type        transaction.Type
	Date        time.Time
	CreatedAt   time.Time
}

// Page is an offset window over an ordered listing.
type Page struct {
	Skip  int
	Limit int
}

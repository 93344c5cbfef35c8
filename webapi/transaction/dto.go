package transaction

import (
	"time"

	domaintx "github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/validation"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateTransactionRequest represents the request body for recording a transaction.
// Amount accepts a JSON number or string; date defaults to now.
type CreateTransactionRequest struct {
	Amount          *decimal.Decimal     `json:"amount" swaggertype:"string" example:"100.00" validate:"required,amount_positive,amount_max"`
	Description     *string              `json:"description" validate:"omitempty,max=500"`
	TransactionType string               `json:"transaction_type" validate:"required,oneof=income expense"`
	Date            *validation.DateTime `json:"date" swaggertype:"string" validate:"omitempty,not_after_30d"`
	CategoryID      *uint                `json:"category_id" validate:"omitempty,gt=0"`
}

func (r CreateTransactionRequest) toDTO() *dto.TransactionCreate {
	out := &dto.TransactionCreate{
		CategoryID:  r.CategoryID,
		Amount:      *r.Amount,
		Description: r.Description,
		Type:        domaintx.Type(r.TransactionType),
	}
	if r.Date != nil {
		out.Date = r.Date.Time
	}
	return out
}

// UpdateTransactionRequest is a sparse patch; omitted fields keep their value.
type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal     `json:"amount" swaggertype:"string" validate:"omitempty,amount_positive,amount_max"`
	Description     *string              `json:"description" validate:"omitempty,max=500"`
	TransactionType *string              `json:"transaction_type" validate:"omitempty,oneof=income expense"`
	Date            *validation.DateTime `json:"date" swaggertype:"string" validate:"omitempty,not_after_30d"`
	CategoryID      *uint                `json:"category_id" validate:"omitempty,gt=0"`
}

func (r UpdateTransactionRequest) IsEmpty() bool {
	return r.Amount == nil &&
		r.Description == nil &&
		r.TransactionType == nil &&
		r.Date == nil &&
		r.CategoryID == nil
}

func (r UpdateTransactionRequest) toPatch() *dto.TransactionUpdate {
	patch := &dto.TransactionUpdate{
		CategoryID:  r.CategoryID,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date.Ptr(),
	}
	if r.TransactionType != nil {
		t := domaintx.Type(*r.TransactionType)
		patch.Type = &t
	}
	return patch
}

// ListQuery holds the offset window of GET /transactions.
type ListQuery struct {
	Skip  int  `query:"skip" validate:"gte=0"`
	Limit *int `query:"limit" validate:"omitempty,gte=1"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	CategoryID      *uint     `json:"category_id"`
	Amount          string    `json:"amount" example:"100.00"`
	Description     *string   `json:"description"`
	TransactionType string    `json:"transaction_type"`
	Date            time.Time `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewTransactionResponse(t *dto.TransactionRead) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		CategoryID:      t.CategoryID,
		Amount:          t.Amount.StringFixed(domaintx.AmountScale),
		Description:     t.Description,
		TransactionType: string(t.Type),
		Date:            t.Date.UTC(),
		CreatedAt:       t.CreatedAt.UTC(),
	}
}

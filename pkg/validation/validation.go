// Package validation wraps go-playground/validator with the rules used by
// request payloads: money amounts, bounded transaction dates, hex colors
// and non-empty patches.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	TagAmountPositive = "amount_positive"
	TagAmountMax      = "amount_max"
	TagNotAfter30d    = "not_after_30d"
	TagHexColor       = "hex_color"
)

// EmptyPatchMessage is reported when an update carries no fields.
const EmptyPatchMessage = "must provide at least one field to update"

// Patch is implemented by update payloads that may arrive empty.
type Patch interface {
	IsEmpty() bool
}

// FieldError is a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every field rejected by a Struct call.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return domain.ErrValidation
}

// Validator is safe for concurrent use once built.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a Validator that checks dates against the wall clock.
func New() *Validator {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Validator {
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), now: now}

	v.validate.RegisterTagNameFunc(fieldName)
	v.validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.validate.RegisterCustomTypeFunc(dateTimeValue, DateTime{})

	mustRegister(v.validate, TagAmountPositive, amountPositive)
	mustRegister(v.validate, TagAmountMax, amountMax)
	mustRegister(v.validate, TagNotAfter30d, v.notAfter30d)
	mustRegister(v.validate, TagHexColor, hexColor)
	return v
}

// Struct validates s and returns nil or an *Error.
func (v *Validator) Struct(s any) error {
	if p, ok := s.(Patch); ok && p.IsEmpty() {
		return &Error{Fields: []FieldError{{Message: EmptyPatchMessage}}}
	}
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// fieldName reports fields by their wire name: json, then query, then form.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "query", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func dateTimeValue(field reflect.Value) any {
	if d, ok := field.Interface().(DateTime); ok {
		return d.Time
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func amountPositive(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && !errors.Is(transaction.ValidateAmount(d), transaction.ErrAmountNotPositive)
}

func amountMax(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && !transaction.NormalizeAmount(d).GreaterThan(transaction.MaxAmount)
}

func (v *Validator) notAfter30d(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	return transaction.ValidateDate(t, v.now()) == nil
}

func hexColor(fl validator.FieldLevel) bool {
	return category.IsColor(fl.Field().String())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case TagAmountPositive:
		return transaction.ErrAmountNotPositive.Error()
	case TagAmountMax:
		return transaction.ErrAmountTooLarge.Error()
	case TagNotAfter30d:
		return transaction.ErrDateTooFarAhead.Error()
	case TagHexColor:
		return "color must be in hex format (#RGB or #RRGGBB)"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

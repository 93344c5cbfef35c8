package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

type txInput struct {
	Amount *decimal.Decimal `json:"amount" validate:"required,amount_positive,amount_max"`
	Type   string           `json:"transaction_type" validate:"required,oneof=income expense"`
	Date   *DateTime        `json:"date" validate:"omitempty,not_after_30d"`
}

type colorInput struct {
	Color *string `json:"color" validate:"omitempty,hex_color"`
}

type patchInput struct {
	Name *string `json:"name" validate:"omitempty,min=2"`
}

func (p patchInput) IsEmpty() bool { return p.Name == nil }

func decode(t *testing.T, body string, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out))
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	require.ErrorAs(t, err, &verr)
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestStruct_ValidTransaction(t *testing.T) {
	v := NewWithClock(func() time.Time { return now })
	var in txInput
	decode(t, `{"amount":"12.50","transaction_type":"expense","date":"2025-01-09T10:00:00"}`, &in)
	assert.NoError(t, v.Struct(in))
	assert.Equal(t, time.UTC, in.Date.Location())
}

func TestStruct_AmountRules(t *testing.T) {
	v := NewWithClock(func() time.Time { return now })
	cases := map[string]string{
		"zero":     `{"amount":0,"transaction_type":"income"}`,
		"negative": `{"amount":"-5","transaction_type":"income"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var in txInput
			decode(t, body, &in)
			msgs := fieldMessages(t, v.Struct(in))
			assert.Contains(t, msgs["amount"], "greater than 0")
		})
	}

	var in txInput
	decode(t, `{"amount":"100000000","transaction_type":"income"}`, &in)
	assert.Contains(t, fieldMessages(t, v.Struct(in)), "amount")
}

func TestStruct_MissingAmount(t *testing.T) {
	v := New()
	var in txInput
	decode(t, `{"transaction_type":"income"}`, &in)
	assert.Equal(t, "field required", fieldMessages(t, v.Struct(in))["amount"])
}

func TestStruct_TransactionType(t *testing.T) {
	v := New()
	var in txInput
	decode(t, `{"amount":1,"transaction_type":"transfer"}`, &in)
	assert.Contains(t, fieldMessages(t, v.Struct(in)), "transaction_type")
}

func TestStruct_DateWindow(t *testing.T) {
	v := NewWithClock(func() time.Time { return now })

	boundary := now.Add(30 * 24 * time.Hour)
	in := txInput{Amount: ptr(decimal.NewFromInt(1)), Type: "income", Date: &DateTime{Time: boundary}}
	assert.NoError(t, v.Struct(in), "the boundary itself is allowed")

	in.Date = &DateTime{Time: boundary.Add(time.Second)}
	assert.Contains(t, fieldMessages(t, v.Struct(in))["date"], "30 days")

	in.Date = &DateTime{Time: now.AddDate(-5, 0, 0)}
	assert.NoError(t, v.Struct(in), "past dates are allowed")
}

func TestStruct_HexColor(t *testing.T) {
	v := New()
	for _, ok := range []string{"#fff", "#A1B2C3"} {
		assert.NoError(t, v.Struct(colorInput{Color: &ok}), ok)
	}
	for _, bad := range []string{"fff", "#ffff", "#GGGGGG", "#1234567"} {
		assert.Contains(t, fieldMessages(t, v.Struct(colorInput{Color: &bad})), "color", bad)
	}
	assert.NoError(t, v.Struct(colorInput{}))
}

func TestStruct_EmptyPatch(t *testing.T) {
	v := New()
	err := v.Struct(patchInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), EmptyPatchMessage)

	name := "ok"
	assert.NoError(t, v.Struct(patchInput{Name: &name}))
}

func TestParseDateTime(t *testing.T) {
	cases := map[string]time.Time{
		"2025-01-02T03:04:05Z":      time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		"2025-01-02T05:04:05+02:00": time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		"2025-01-02T03:04:05":       time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		"2025-01-02 03:04:05.5":     time.Date(2025, 1, 2, 3, 4, 5, 500000000, time.UTC),
		"2025-01-02":                time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseDateTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got.Time), in)
		assert.Equal(t, time.UTC, got.Location(), in)
	}

	_, err := ParseDateTime("yesterday")
	assert.Error(t, err)

	var d DateTime
	assert.Error(t, json.Unmarshal([]byte(`12345`), &d))
}

func ptr[T any](v T) *T { return &v }

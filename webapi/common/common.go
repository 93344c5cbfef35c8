// Package common holds the response helpers shared by every route group.
package common

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/validation"
	"github.com/gofiber/fiber/v2"
)

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference of this occurrence
	Errors   any    `json:"errors,omitempty"`   // Field level errors
}

// MessageResponse is returned by deletes.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProblemDetailsJSON writes a Problem Details response for err.
// Optional args override the defaults: a string sets the detail and an int
// sets the status. Without an int the status comes from ErrorToStatusCode.
// Internal errors never expose their message.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := 0
	detail := ""
	for _, arg := range args {
		switch v := arg.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	if status == 0 {
		status = ErrorToStatusCode(err)
	}

	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		pd.Errors = verr.Fields
	}
	if pd.Detail == "" && err != nil {
		if status >= fiber.StatusInternalServerError {
			slog.Error("Unhandled error", "path", c.Path(), "error", err)
		} else {
			pd.Detail = err.Error()
		}
	}
	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(pd, "application/problem+json")
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenFormat),
		errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, user.ErrInactiveUser):
		return fiber.StatusBadRequest
	case errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidReference):
		return fiber.StatusNotFound
	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrUsernameTaken),
		errors.Is(err, user.ErrIdentityTaken),
		errors.Is(err, category.ErrNameTaken),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, transaction.ErrAmountNotPositive),
		errors.Is(err, transaction.ErrAmountTooLarge),
		errors.Is(err, transaction.ErrDateTooFarAhead),
		errors.Is(err, transaction.ErrInvalidType):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors that escape handlers and middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ProblemDetailsJSON(c, http.StatusText(status), err, fe.Message, status)
	}
	return ProblemDetailsJSON(c, http.StatusText(status), err, status)
}

// BindAndValidate parses the request body into T and validates it.
// On failure it writes a 422 response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx, v *validation.Validator) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, err.Error(), fiber.StatusUnprocessableEntity)
	}
	if err := v.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusUnprocessableEntity)
	}
	return &input, nil
}

// BindQueryAndValidate is BindAndValidate for query parameters.
func BindQueryAndValidate[T any](c *fiber.Ctx, v *validation.Validator) (*T, error) {
	var input T
	if err := c.QueryParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid query parameters", err, err.Error(), fiber.StatusUnprocessableEntity)
	}
	if err := v.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusUnprocessableEntity)
	}
	return &input, nil
}

// ParseID reads a positive integer path parameter. Anything else is a
// validation failure on that parameter.
func ParseID(c *fiber.Ctx, name string) (uint, bool, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		verr := &validation.Error{Fields: []validation.FieldError{{
			Field:   name,
			Message: "must be a positive integer",
		}}}
		return 0, false, ProblemDetailsJSON(c, "Validation failed", verr, fiber.StatusUnprocessableEntity)
	}
	return uint(id), true, nil
}

// MessageJSON writes {"message": msg} with status 200.
func MessageJSON(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: msg})
}

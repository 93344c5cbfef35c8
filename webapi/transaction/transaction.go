package transaction

import (
	"fmt"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	txsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/validation"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	r fiber.Router,
	svc *txsvc.Service,
	v *validation.Validator,
	paging *config.Pagination,
	protected fiber.Handler,
) {
	g := r.Group("/transactions", protected)
	g.Get("/", List(svc, v, paging))
	g.Post("/", Create(svc, v))
	g.Get("/:id", Get(svc))
	g.Put("/:id", Update(svc, v))
	g.Delete("/:id", Delete(svc))
}

// List returns a page of the caller's transactions ordered by id.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (1-500)" default(100)
// @Success 200 {array} TransactionResponse
// @Failure 401 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions [get]
// @Security BearerAuth
func List(svc *txsvc.Service, v *validation.Validator, paging *config.Pagination) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		query, err := common.BindQueryAndValidate[ListQuery](c, v)
		if query == nil {
			return err // error response already written
		}
		page := dto.Page{Skip: query.Skip, Limit: paging.DefaultLimit}
		if query.Limit != nil {
			page.Limit = *query.Limit
		}
		if page.Limit > paging.MaxLimit {
			verr := &validation.Error{Fields: []validation.FieldError{{
				Field:   "limit",
				Message: fmt.Sprintf("must be less than or equal to %d", paging.MaxLimit),
			}}}
			return common.ProblemDetailsJSON(c, "Validation failed", verr)
		}
		txs, err := svc.List(c.UserContext(), u.ID, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		out := make([]TransactionResponse, 0, len(txs))
		for _, t := range txs {
			out = append(out, NewTransactionResponse(t))
		}
		return c.JSON(out)
	}
}

// Create records a transaction owned by the caller.
// @Summary Create transaction
// @Description Amount must be positive; date defaults to now and may be at most 30 days ahead
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} TransactionResponse
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions [post]
// @Security BearerAuth
func Create(svc *txsvc.Service, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		input, err := common.BindAndValidate[CreateTransactionRequest](c, v)
		if input == nil {
			return err // error response already written
		}
		created, err := svc.Create(c.UserContext(), u.ID, input.toDTO())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create transaction", err)
		}
		return c.Status(fiber.StatusCreated).JSON(NewTransactionResponse(created))
	}
}

// Get returns one of the caller's transactions.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [get]
// @Security BearerAuth
func Get(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		found, err := svc.Get(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get transaction", err)
		}
		return c.JSON(NewTransactionResponse(found))
	}
}

// Update patches one of the caller's transactions.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} TransactionResponse
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions/{id} [put]
// @Security BearerAuth
func Update(svc *txsvc.Service, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c, v)
		if input == nil {
			return err // error response already written
		}
		updated, err := svc.Update(c.UserContext(), u.ID, id, input.toPatch())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update transaction", err)
		}
		return c.JSON(NewTransactionResponse(updated))
	}
}

// Delete removes one of the caller's transactions.
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} common.MessageResponse
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func Delete(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete transaction", err)
		}
		return common.MessageJSON(c, "Transaction deleted successfully")
	}
}

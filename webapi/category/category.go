package category

import (
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	categorysvc "github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/pkg/validation"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	r fiber.Router,
	svc *categorysvc.Service,
	v *validation.Validator,
	protected fiber.Handler,
) {
	g := r.Group("/categories", protected)
	g.Get("/", List(svc))
	g.Post("/", Create(svc, v))
	g.Get("/:id", Get(svc))
	g.Put("/:id", Update(svc, v))
	g.Delete("/:id", Delete(svc))
}

// List returns the caller's categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryRead
// @Failure 401 {object} common.ProblemDetails
// @Router /categories [get]
// @Security BearerAuth
func List(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		categories, err := svc.List(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list categories", err)
		}
		if categories == nil {
			categories = []*dto.CategoryRead{}
		}
		return c.JSON(categories)
	}
}

// Create adds a category owned by the caller.
// @Summary Create category
// @Description Category names are unique per user
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /categories [post]
// @Security BearerAuth
func Create(svc *categorysvc.Service, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		input, err := common.BindAndValidate[CreateCategoryRequest](c, v)
		if input == nil {
			return err // error response already written
		}
		created, err := svc.Create(c.UserContext(), u.ID, input.toDTO())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create category", err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// Get returns one of the caller's categories.
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryRead
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /categories/{id} [get]
// @Security BearerAuth
func Get(svc *categorysvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, "Couldn't get category", err)
		}
		return c.JSON(found)
	}
}

// Update patches one of the caller's categories.
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.CategoryRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /categories/{id} [put]
// @Security BearerAuth
func Update(svc *categorysvc.Service, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateCategoryRequest](c, v)
		if input == nil {
			return err // error response already written
		}
		updated, err := svc.Update(c.UserContext(), u.ID, id, input.toPatch())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update category", err)
		}
		return c.JSON(updated)
	}
}

// Delete removes one of the caller's categories; its transactions are kept
// without a category.
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} common.MessageResponse
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /categories/{id} [delete]
// @Security BearerAuth
func Delete(svc *categorysvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, "Couldn't delete category", err)
		}
		return common.MessageJSON(c, "Category deleted successfully")
	}
}

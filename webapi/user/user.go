package user

import (
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/amirasaad/fintrack/pkg/validation"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes mounts the self-service profile endpoints; every one needs a token.
func Routes(
	r fiber.Router,
	userSvc *usersvc.Service,
	v *validation.Validator,
	protected fiber.Handler,
) {
	g := r.Group("/users", protected)
	g.Get("/me", GetMe())
	g.Put("/me", UpdateMe(userSvc, v))
	g.Delete("/me", DeleteMe(userSvc))
}

// GetMe returns the authenticated user's profile.
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /users/me [get]
// @Security BearerAuth
func GetMe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		return c.JSON(NewUserResponse(u))
	}
}

// UpdateMe changes the authenticated user's email and/or username.
// @Summary Update current user
// @Description Email and username must stay unique across all users
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileInput true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /users/me [put]
// @Security BearerAuth
func UpdateMe(userSvc *usersvc.Service, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		input, err := common.BindAndValidate[UpdateProfileInput](c, v)
		if input == nil {
			return err // error response already written
		}
		updated, err := userSvc.UpdateProfile(c.UserContext(), u.ID, input.toPatch())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update profile", err)
		}
		return c.JSON(NewUserResponse(updated))
	}
}

// DeleteMe removes the authenticated user with all categories and transactions.
// @Summary Delete current user
// @Tags users
// @Produce json
// @Success 200 {object} common.MessageResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /users/me [delete]
// @Security BearerAuth
func DeleteMe(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		if err := userSvc.DeleteUser(c.UserContext(), u.ID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete account", err)
		}
		return common.MessageJSON(c, "Account deleted successfully")
	}
}

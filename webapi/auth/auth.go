package auth

import (
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/amirasaad/fintrack/pkg/validation"
	"github.com/amirasaad/fintrack/webapi/common"
	userweb "github.com/amirasaad/fintrack/webapi/user"
	"github.com/gofiber/fiber/v2"
)

const tokenType = "bearer"

func Routes(
	r fiber.Router,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	v *validation.Validator,
	protected fiber.Handler,
) {
	g := r.Group("/auth")
	g.Post("/register", Register(userSvc, v))
	g.Post("/login", Login(authSvc, v))
	g.Post("/refresh", protected, Refresh(authSvc))
}

// Register creates a new account.
// @Summary Register a new user
// @Description Create an account with a unique email and username
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} userweb.UserResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(userSvc *usersvc.Service, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c, v)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.CreateUser(c.UserContext(), input.Email, input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return c.Status(fiber.StatusCreated).JSON(userweb.NewUserResponse(u))
	}
}

// Login exchanges credentials for an access token.
// @Summary User login
// @Description Authenticate with email or username and password
// @Tags auth
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param username formData string true "Email or username"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c, v)
		if input == nil {
			return err // error response already written
		}
		u, err := authSvc.Login(c.UserContext(), input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return c.JSON(TokenResponse{AccessToken: token, TokenType: tokenType})
	}
}

// Refresh issues a fresh token for the authenticated user.
// @Summary Refresh access token
// @Tags auth
// @Produce json
// @Success 200 {object} TokenResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/refresh [post]
// @Security BearerAuth
func Refresh(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return c.JSON(TokenResponse{AccessToken: token, TokenType: tokenType})
	}
}

// Package middleware holds Fiber middleware shared by the HTTP routes.
package middleware

import (
	"context"
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey     = "jwt"
	principalKey = "principal"
)

// PrincipalResolver turns a verified token into the active user it names.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token *jwt.Token) (*dto.UserRead, error)
}

// JwtProtected verifies the bearer token with keyFunc and stores the
// resolved user for Principal. Missing, malformed, expired or orphaned
// tokens answer 401 with a Bearer challenge; inactive users answer 400.
func JwtProtected(keyFunc jwt.Keyfunc, resolver PrincipalResolver) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    keyFunc,
		Claims:     &auth.Claims{},
		ContextKey: tokenKey,
		AuthScheme: "Bearer",
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return unauthorized(c, auth.ErrInvalidToken)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok {
				return unauthorized(c, auth.ErrInvalidToken)
			}
			principal, err := resolver.ResolvePrincipal(c.UserContext(), token)
			switch {
			case err == nil:
			case errors.Is(err, user.ErrInactiveUser):
				return fiber.NewError(fiber.StatusBadRequest, user.ErrInactiveUser.Error())
			case errors.Is(err, user.ErrUserNotFound):
				return unauthorized(c, user.ErrUserNotFound)
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrInvalidTokenFormat):
				return unauthorized(c, auth.ErrInvalidToken)
			default:
				return err
			}
			c.Locals(principalKey, principal)
			return c.Next()
		},
	})
}

// Principal returns the user stored by JwtProtected.
func Principal(c *fiber.Ctx) (*dto.UserRead, bool) {
	u, ok := c.Locals(principalKey).(*dto.UserRead)
	return u, ok && u != nil
}

func unauthorized(c *fiber.Ctx, reason error) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return fiber.NewError(fiber.StatusUnauthorized, reason.Error())
}

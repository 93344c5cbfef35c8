package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolvePrincipal(ctx context.Context, token *jwt.Token) (*dto.UserRead, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).(*dto.UserRead)
	return u, args.Error(1)
}

func setup(t *testing.T) (*fiber.App, *auth.TokenService, *mockResolver) {
	t.Helper()
	tokens, err := auth.NewTokenService(&config.Jwt{Secret: "mw-secret", Expiry: time.Minute, Algorithm: "HS256"})
	require.NoError(t, err)
	resolver := &mockResolver{}
	resolver.Test(t)
	t.Cleanup(func() { resolver.AssertExpectations(t) })

	app := fiber.New()
	app.Get("/me", JwtProtected(tokens.KeyFunc, resolver), func(c *fiber.Ctx) error {
		u, ok := Principal(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(u.Username)
	})
	return app, tokens, resolver
}

func get(t *testing.T, app *fiber.App, header string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestJwtProtected_MissingHeader(t *testing.T) {
	app, _, _ := setup(t)
	resp := get(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
}

func TestJwtProtected_MalformedToken(t *testing.T) {
	app, _, _ := setup(t)
	for _, header := range []string{"Bearer", "Bearer not-a-jwt", "Basic abc"} {
		resp := get(t, app, header)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestJwtProtected_WrongSecret(t *testing.T) {
	app, _, _ := setup(t)
	other, err := auth.NewTokenService(&config.Jwt{Secret: "other", Expiry: time.Minute, Algorithm: "HS256"})
	require.NoError(t, err)
	token, err := other.Issue(1)
	require.NoError(t, err)

	resp := get(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_ResolvesPrincipal(t *testing.T) {
	app, tokens, resolver := setup(t)
	token, err := tokens.Issue(7)
	require.NoError(t, err)
	resolver.On("ResolvePrincipal", mock.Anything, mock.AnythingOfType("*jwt.Token")).
		Return(&dto.UserRead{ID: 7, Username: "alice", IsActive: true}, nil).Once()

	resp := get(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "alice", string(body))
}

func TestJwtProtected_ResolverFailures(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"deleted user":   {user.ErrUserNotFound, fiber.StatusUnauthorized},
		"bad subject":    {auth.ErrInvalidTokenFormat, fiber.StatusUnauthorized},
		"expired policy": {auth.ErrInvalidToken, fiber.StatusUnauthorized},
		"inactive":       {user.ErrInactiveUser, fiber.StatusBadRequest},
		"store down":     {errors.New("connection refused"), fiber.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app, tokens, resolver := setup(t)
			token, err := tokens.Issue(7)
			require.NoError(t, err)
			resolver.On("ResolvePrincipal", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			resp := get(t, app, "Bearer "+token)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

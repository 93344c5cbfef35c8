package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/internal/fixtures"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var hasher = utils.NewPasswordHasher(utils.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1})

type harness struct {
	svc    *authsvc.Service
	tokens *authsvc.TokenService
	users  *fixtures.MockUserRepository
	tx     *txRecorder
}

// txRecorder keeps the result of every unit of work it runs.
type txRecorder struct {
	*fixtures.MockUnitOfWork
	results []error
}

func (r *txRecorder) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	err := r.MockUnitOfWork.Do(ctx, fn)
	r.results = append(r.results, err)
	return err
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	uow := fixtures.NewMockUnitOfWork(t)
	users := fixtures.NewMockUserRepository(t)
	uow.Users = users

	tx := &txRecorder{MockUnitOfWork: uow}

	tokens, err := authsvc.NewTokenService(&config.Jwt{Secret: "test-secret", Expiry: 30 * time.Minute})
	require.NoError(t, err)
	return &harness{
		svc:    authsvc.New(tx, tokens, hasher, slog.Default()),
		tokens: tokens,
		users:  users,
		tx:     tx,
	}
}

func (h *harness) parse(t *testing.T, raw string) *jwt.Token {
	t.Helper()
	token, err := jwt.ParseWithClaims(raw, &authsvc.Claims{}, h.tokens.KeyFunc)
	require.NoError(t, err)
	return token
}

func storedUser(t *testing.T, id uint, password string, active bool) *dto.UserRead {
	t.Helper()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	return &dto.UserRead{
		ID:             id,
		Email:          "a@x.com",
		Username:       "a",
		HashedPassword: hash,
		IsActive:       active,
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	u := storedUser(t, 1, "p", true)
	h.users.On("GetByIdentity", mock.Anything, "a@x.com").Return(repository.Found(u), nil).Once()

	got, err := h.svc.Login(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	u := storedUser(t, 1, "p", true)
	h.users.On("GetByIdentity", mock.Anything, "a").Return(repository.Found(u), nil).Once()

	got, err := h.svc.Login(context.Background(), "a", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Nil(t, got)
}

func TestLogin_UnknownIdentityLooksLikeWrongPassword(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.users.On("GetByIdentity", mock.Anything, "ghost").
		Return(repository.NotFound[*dto.UserRead](), nil).Once()

	_, err := h.svc.Login(context.Background(), "ghost", "p")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	u := storedUser(t, 1, "p", false)
	h.users.On("GetByIdentity", mock.Anything, "a").Return(repository.Found(u), nil).Once()

	_, err := h.svc.Login(context.Background(), "a", "p")
	assert.ErrorIs(t, err, user.ErrInactiveUser)
}

func TestLogin_MalformedStoredHash(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	u := &dto.UserRead{ID: 1, HashedPassword: "not-a-hash", IsActive: true}
	h.users.On("GetByIdentity", mock.Anything, "a").Return(repository.Found(u), nil).Once()

	_, err := h.svc.Login(context.Background(), "a", "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMalformedHash)
	assert.NotErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_StoreFailure(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	storeErr := errors.New("connection refused")
	h.users.On("GetByIdentity", mock.Anything, "a").
		Return(repository.NotFound[*dto.UserRead](), storeErr).Once()

	_, err := h.svc.Login(context.Background(), "a", "p")
	assert.ErrorIs(t, err, storeErr)
}

func TestLogin_PasswordCheckedOutsideTransaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity string
		password string
		lookup   repository.Lookup[*dto.UserRead]
	}{
		{"wrong password", "a", "wrong", repository.Found(storedUser(t, 1, "p", true))},
		{"unknown identity", "ghost", "p", repository.NotFound[*dto.UserRead]()},
		{"malformed hash", "a", "p", repository.Found(&dto.UserRead{ID: 1, HashedPassword: "x", IsActive: true})},
		{"inactive user", "a", "p", repository.Found(storedUser(t, 1, "p", false))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)
			h.users.On("GetByIdentity", mock.Anything, tt.identity).Return(tt.lookup, nil).Once()

			_, err := h.svc.Login(context.Background(), tt.identity, tt.password)
			require.Error(t, err)
			assert.Equal(t, []error{nil}, h.tx.results, "the lookup transaction must commit before the hash check")
		})
	}
}

func TestResolvePrincipal_ActiveUser(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	u := storedUser(t, 9, "p", true)
	h.users.On("Get", mock.Anything, uint(9)).Return(repository.Found(u), nil).Once()

	raw, err := h.svc.GenerateToken(u)
	require.NoError(t, err)

	got, err := h.svc.ResolvePrincipal(context.Background(), h.parse(t, raw))
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.ID)
}

func TestResolvePrincipal_Failures(t *testing.T) {
	t.Parallel()

	t.Run("unverified token", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		_, err := h.svc.ResolvePrincipal(context.Background(), &jwt.Token{Claims: &authsvc.Claims{}})
		assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
	})

	t.Run("user deleted after issue", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.users.On("Get", mock.Anything, uint(3)).Return(repository.NotFound[*dto.UserRead](), nil).Once()
		raw, err := h.tokens.Issue(3)
		require.NoError(t, err)

		_, err = h.svc.ResolvePrincipal(context.Background(), h.parse(t, raw))
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("inactive user", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		u := storedUser(t, 4, "p", false)
		h.users.On("Get", mock.Anything, uint(4)).Return(repository.Found(u), nil).Once()
		raw, err := h.tokens.Issue(4)
		require.NoError(t, err)

		_, err = h.svc.ResolvePrincipal(context.Background(), h.parse(t, raw))
		assert.ErrorIs(t, err, user.ErrInactiveUser)
	})
}

func TestResolvePrincipal_NonNumericSubject(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &authsvc.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(raw, &authsvc.Claims{}, h.tokens.KeyFunc)
	require.NoError(t, err)

	_, err = h.svc.ResolvePrincipal(context.Background(), parsed)
	assert.ErrorIs(t, err, authsvc.ErrInvalidTokenFormat)
}

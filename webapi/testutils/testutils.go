// Package testutils provides an end-to-end test suite that drives the full
// Fiber app against an isolated in-memory SQLite database.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/infra"
	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const (
	APIPrefix    = "/api/v1"
	TestPassword = "password123"
	testTimeout  = 10 * time.Second
)

// TestUser is an account created through the API.
type TestUser struct {
	ID       uint
	Email    string
	Username string
	Password string
}

// TestConfig returns a configuration suitable for tests: a private
// in-memory database, cheap password hashing and no rate limiting.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Name:      "Personal Finance Tracker API",
		Version:   "test",
		APIPrefix: APIPrefix,
		Server:    &config.Server{Host: "localhost", Port: 0},
		Log:       &config.Log{Format: "text"},
		DB: &config.DB{
			Url:         fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
			AutoMigrate: true,
		},
		Auth: &config.Auth{
			Jwt:  &config.Jwt{Secret: "test-secret", Expiry: 30 * time.Minute, Algorithm: "HS256"},
			Hash: &config.Hash{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		},
		Redis:      &config.Redis{},
		RateLimit:  &config.RateLimit{},
		Pagination: &config.Pagination{DefaultLimit: 100, MaxLimit: 500},
	}
}

// NewTestApp builds the application on a fresh migrated database.
func NewTestApp(cfg *config.App) (*fiber.App, *app.App, *gorm.DB, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := infra.RunMigrations(db, cfg.DB.Url); err != nil {
		return nil, nil, nil, err
	}
	deps := &app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a, err := app.New(deps, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return webapi.SetupApp(a), a, db, nil
}

// E2ETestSuite provides a suite with its own database and Fiber app.
type E2ETestSuite struct {
	suite.Suite
	DB     *gorm.DB
	App    *fiber.App
	Deps   *app.App
	Config *config.App
}

// SetupSuite initializes the suite with a private in-memory database.
func (s *E2ETestSuite) SetupSuite() {
	if s.Config == nil {
		s.Config = TestConfig()
	}
	var err error
	s.App, s.Deps, s.DB, err = NewTestApp(s.Config)
	s.Require().NoError(err)
}

// TearDownSuite releases the database.
func (s *E2ETestSuite) TearDownSuite() {
	if s.DB == nil {
		return
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// MakeRequest sends a JSON request to path below the API prefix.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, APIPrefix+path, bytes.NewBufferString(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, APIPrefix+path, nil)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return s.do(req)
}

// MakeFormRequest posts an url-encoded form below the API prefix.
func (s *E2ETestSuite) MakeFormRequest(path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, APIPrefix+path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return s.do(req)
}

// MakeRawRequest sends req unchanged.
func (s *E2ETestSuite) MakeRawRequest(req *http.Request) *http.Response {
	return s.do(req)
}

func (s *E2ETestSuite) do(req *http.Request) *http.Response {
	resp, err := s.App.Test(req, int(testTimeout.Milliseconds()))
	s.Require().NoError(err)
	return resp
}

// DecodeJSON reads resp's body into out and closes it.
func (s *E2ETestSuite) DecodeJSON(resp *http.Response, out any) {
	defer resp.Body.Close() //nolint:errcheck
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

// CreateTestUser registers a unique user through POST /auth/register.
func (s *E2ETestSuite) CreateTestUser() *TestUser {
	suffix := uuid.NewString()[:8]
	u := &TestUser{
		Email:    fmt.Sprintf("test_%s@example.com", suffix),
		Username: "testuser_" + suffix,
		Password: TestPassword,
	}
	body := fmt.Sprintf(`{"email":%q,"username":%q,"password":%q}`, u.Email, u.Username, u.Password)
	resp := s.MakeRequest(http.MethodPost, "/auth/register", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	s.DecodeJSON(resp, &created)
	s.Require().NotZero(created.ID)
	u.ID = created.ID
	return u
}

// LoginUser logs u in with the OAuth2 password form and returns the token.
func (s *E2ETestSuite) LoginUser(u *TestUser) string {
	resp := s.MakeFormRequest("/auth/login", url.Values{
		"username": {u.Email},
		"password": {u.Password},
	})
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	s.DecodeJSON(resp, &token)
	s.Require().NotEmpty(token.AccessToken)
	return token.AccessToken
}

// CreateCategory creates a category for token and returns its id.
func (s *E2ETestSuite) CreateCategory(token, name string) uint {
	resp := s.MakeRequest(http.MethodPost, "/categories", fmt.Sprintf(`{"name":%q}`, name), token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var created struct {
		ID uint `json:"id"`
	}
	s.DecodeJSON(resp, &created)
	return created.ID
}

// CreateTransaction posts body to /transactions and returns the new id.
func (s *E2ETestSuite) CreateTransaction(token, body string) uint {
	resp := s.MakeRequest(http.MethodPost, "/transactions", body, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var created struct {
		ID uint `json:"id"`
	}
	s.DecodeJSON(resp, &created)
	return created.ID
}

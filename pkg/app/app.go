// Package app wires the services of the finance tracker from its
// configuration and infrastructure dependencies.
package app

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/amirasaad/fintrack/pkg/validation"
	"github.com/gofiber/fiber/v2"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
	// RateLimitStorage backs the HTTP rate limiter; nil keeps counters in memory.
	RateLimitStorage fiber.Storage
}

type App struct {
	Deps               *Deps
	Config             *config.App
	Validator          *validation.Validator
	AuthService        *auth.Service
	UserService        *user.Service
	CategoryService    *category.Service
	TransactionService *transaction.Service
}

func New(deps *Deps, cfg *config.App) (*App, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.Jwt)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	hasher := utils.NewPasswordHasher(HashParams(cfg.Auth.Hash))

	return &App{
		Deps:               deps,
		Config:             cfg,
		Validator:          validation.New(),
		AuthService:        auth.New(deps.Uow, tokens, hasher, deps.Logger),
		UserService:        user.New(deps.Uow, hasher, deps.Logger),
		CategoryService:    category.New(deps.Uow, deps.Logger),
		TransactionService: transaction.New(deps.Uow, deps.Logger),
	}, nil
}

// HashParams converts the configured argon2id costs; nil means defaults.
func HashParams(cfg *config.Hash) utils.HashParams {
	if cfg == nil {
		return utils.DefaultHashParams
	}
	return utils.HashParams{
		Memory:      cfg.Memory,
		Iterations:  cfg.Iterations,
		Parallelism: cfg.Parallelism,
		SaltLength:  cfg.SaltLength,
		KeyLength:   cfg.KeyLength,
	}
}

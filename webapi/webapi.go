// Package webapi provides the HTTP surface of the finance tracker.
// It is organized into sub-packages per resource:
// - auth: registration, login and token refresh
// - user: the caller's own profile
// - category: per-user categories
// - transaction: per-user income and expense records
package webapi

import (
	"errors"
	"strings"

	_ "github.com/amirasaad/fintrack/docs" // swagger spec
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authweb "github.com/amirasaad/fintrack/webapi/auth"
	categoryweb "github.com/amirasaad/fintrack/webapi/category"
	"github.com/amirasaad/fintrack/webapi/common"
	transactionweb "github.com/amirasaad/fintrack/webapi/transaction"
	userweb "github.com/amirasaad/fintrack/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
)

// WelcomeResponse is served at the root path.
type WelcomeResponse struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
	Version string `json:"version"`
}

// SetupApp builds the Fiber app with middleware and every route group.
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberCfg := fiber.Config{
		AppName:                 cfg.Name,
		ErrorHandler:            common.ErrorHandler,
		EnableTrustedProxyCheck: true,
		EnableIPValidation:      true,
	}
	if cfg.Server != nil {
		fiberCfg.ProxyHeader = cfg.Server.ProxyHeader
		fiberCfg.TrustedProxies = cfg.Server.TrustedProxies
	}
	fiberApp := fiber.New(fiberCfg)
	fiberApp.Use(recover.New())
	fiberApp.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.Env != "test" {
		fiberApp.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Rate limiting is disabled when MaxRequests is not positive.
	if cfg.RateLimit != nil && cfg.RateLimit.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          cfg.RateLimit.MaxRequests,
			Expiration:   cfg.RateLimit.Window,
			Storage:      a.Deps.RateLimitStorage,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					"Rate limit exceeded",
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(WelcomeResponse{
			Message: "Welcome To The " + cfg.Name,
			Docs:    "/swagger/index.html",
			Version: apiVersion(cfg.APIPrefix),
		})
	})
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	protected := middleware.JwtProtected(a.AuthService.Tokens().KeyFunc, a.AuthService)
	api := fiberApp.Group(cfg.APIPrefix)

	authweb.Routes(api, a.AuthService, a.UserService, a.Validator, protected)
	userweb.Routes(api, a.UserService, a.Validator, protected)
	categoryweb.Routes(api, a.CategoryService, a.Validator, protected)
	transactionweb.Routes(api, a.TransactionService, a.Validator, cfg.Pagination, protected)
	return fiberApp
}

func apiVersion(prefix string) string {
	parts := strings.Split(strings.Trim(prefix, "/"), "/")
	return parts[len(parts)-1]
}

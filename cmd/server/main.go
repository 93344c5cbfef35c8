package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/fintrack/infra/initializer"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// @title Personal Finance Tracker API
// @version 1.0.0
// @description Track income and expenses per user with categories.
// @BasePath /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your Bearer token in the format: Bearer {token}
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(config.EnvFile())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	fiberApp, res, err := newServer(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Close(); err != nil {
			slog.Error("Failed to release resources", "error", err)
		}
	}()
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server",
			"env", cfg.Env,
			"address", addr,
			"scheme", cfg.Server.Scheme,
		)
		return fiberApp.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
		if err := fiberApp.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// newServer wires the dependencies for cfg into a ready Fiber app.
func newServer(cfg *config.App) (*fiber.App, *initializer.Resources, error) {
	deps, res, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a, err := app.New(deps, cfg)
	if err != nil {
		_ = res.Close()
		return nil, nil, fmt.Errorf("failed to build application: %w", err)
	}
	return webapi.SetupApp(a), res, nil
}

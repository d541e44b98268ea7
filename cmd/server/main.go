package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/leotinoco7/supertrunfo/docs"
	"github.com/leotinoco7/supertrunfo/infra/initializer"
	"github.com/leotinoco7/supertrunfo/pkg/app"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/webapi"
)

const shutdownTimeout = 10 * time.Second

// @title Super Trunfo API
// @version 1.0.0
// @description Card game backend: players, decks, collections, cards and packs.
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	docs.SwaggerInfo.Schemes = []string{cfg.Server.Scheme}

	fiberApp := webapi.SetupApp(app.New(deps, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			"env", cfg.Env,
			"address", cfg.Server.Addr(),
			"docs", cfg.Server.BaseURL()+"/api/index.html",
		)
		errCh <- fiberApp.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if deps.LimiterStorage != nil {
		if err := deps.LimiterStorage.Close(); err != nil {
			slog.Default().Warn("Failed to close limiter storage", "error", err)
		}
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

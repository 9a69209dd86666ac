// Package server initializes and runs the storefront service: it wires the
// configuration, storage, the authentication core, and the HTTP server, and
// handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/avolkov/storefront/internal/logging"
	"github.com/avolkov/storefront/internal/server/auth"
	"github.com/avolkov/storefront/internal/server/config"
	"github.com/avolkov/storefront/internal/server/repositories/repomanager"
	"github.com/avolkov/storefront/internal/server/services"
	"github.com/avolkov/storefront/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	web    *web.Server
}

// NewApp wires the service from configuration. Any error here is a
// configuration or infrastructure problem and must prevent startup.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	issuer, err := auth.NewIssuer([]byte(cfg.SessionSecret), cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	extra, err := auth.ParseRules(cfg.RouteRules)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	table, err := auth.NewTable(append(auth.DefaultRules(), extra...))
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	gate := auth.NewGatekeeper(table, issuer, cfg.SignInPath, cfg.ProtectedHome)

	repos, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	verifier := auth.NewVerifier(repos.Users(), hasher, cfg.MinPasswordLength, cfg.VerifyConcurrency, logger)

	userService := services.NewUserService(repos.Users(), verifier, issuer, hasher, cfg.MinPasswordLength, logger)
	productService := services.NewProductService(repos.Products(), logger)

	webServer := web.NewServer(cfg.HTTPAddr, logger, userService, productService, gate, cfg.SessionTTL)

	return &App{config: cfg, logger: logger, repos: repos, web: webServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run applies migrations and serves until a signal or a fatal server error.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.HTTPAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.repos.RunMigrations(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "closing db", "error", err)
		}
	}()

	if err := app.web.Run(ctx); err != nil {
		return err
	}

	app.logger.Info(ctx, "app stopped")
	return nil
}

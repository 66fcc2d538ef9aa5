// Package server initializes and runs the AuthKeeper application: it builds
// the logger, the credential store backend, the auth service and the HTTP
// server, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/credentials"
	"github.com/dmitrijs2005/authkeeper/internal/server/httpapi"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repo       credentials.Repository
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})
	logger := logging.NewSlogLogger(slog.New(handler))

	repo, err := credentials.New(credentials.Config{
		Driver: cfg.StoreDriver,
		DSN:    cfg.DatabaseDSN,
		Redis: credentials.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	svc := auth.NewService(repo, hasher, cfg, logger)
	httpServer := httpapi.NewServer(cfg, svc, logger)

	return &App{config: cfg, logger: logger, repo: repo, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repo.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prismcrm/prism-backend/internal/adapter/localstore"
	"github.com/prismcrm/prism-backend/internal/adapter/postgres"
	dealrepo "github.com/prismcrm/prism-backend/internal/adapter/postgres/deal"
	"github.com/prismcrm/prism-backend/internal/adapter/provider/anthropic"
	"github.com/prismcrm/prism-backend/internal/config"
	"github.com/prismcrm/prism-backend/internal/service/coach"
	"github.com/prismcrm/prism-backend/internal/service/deal"
	"github.com/prismcrm/prism-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, opens the configured deal store, wires the services with their
// REST handlers, and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("storage_backend", cfg.Storage.Backend),
		slog.String("log_level", cfg.Log.Level),
	)

	store, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	dealService := deal.NewService(logger, store)

	var gen coach.Generator
	if cfg.Coach.APIKey != "" {
		gen = anthropic.NewClient(
			cfg.Coach.APIKey, cfg.Coach.Model, cfg.Coach.MaxTokens,
			cfg.Coach.Timeout, logger,
		)
	} else {
		logger.Warn("coach api key not configured, chat will return the offline reply")
	}
	coachService := coach.NewService(logger, store, gen, cfg.Coach.MaxHistory)

	router := rest.NewRouter(
		logger,
		rest.NewDealHandler(dealService, logger),
		rest.NewCoachHandler(coachService, logger),
		rest.NewHealthHandler(store, BuildVersion()),
		cfg.CORS,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// openStore builds the deal store selected by StorageConfig.Backend. The
// returned cleanup releases backend resources and is safe to call once.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (deal.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := postgres.NewPool(connectCtx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return dealrepo.New(pool), pool.Close, nil

	case config.BackendFile:
		store, err := localstore.New(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using file storage", slog.String("path", cfg.Storage.FilePath))
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

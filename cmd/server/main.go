package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nkhare/divvy/internal/api"
	"github.com/nkhare/divvy/internal/config"
	"github.com/nkhare/divvy/internal/service"
	"github.com/nkhare/divvy/internal/storage"
	"github.com/nkhare/divvy/internal/storage/memory"
	"github.com/nkhare/divvy/internal/storage/sqlite"
	"github.com/nkhare/divvy/pkg/logging"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Env, cfg.SlogLevel())

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.DataBackend)

	handler := api.NewHandler(
		service.NewUserService(store),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
	)

	srv := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        handler.Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", cfg.ListenAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DataBackend == "memory" {
		return memory.New(), nil
	}
	return sqlite.New(cfg.DBPath)
}

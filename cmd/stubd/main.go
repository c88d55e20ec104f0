// Package main локальная заглушка бэкенда админ-панели.
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

	"github.com/joho/godotenv"

	"github.com/subflow/admin-client/internal/config"
	"github.com/subflow/admin-client/internal/lib/sl"
	"github.com/subflow/admin-client/internal/stubserver"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting stubd", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stub, err := stubserver.New(logger, cfg.StubServer)
	if err != nil {
		logger.Error("failed to initialize stub server", sl.Err(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.StubServer.AddressHTTP,
		Handler:      stub.Router(),
		ReadTimeout:  cfg.StubServer.TimeoutHTTP,
		WriteTimeout: cfg.StubServer.TimeoutHTTP,
		IdleTimeout:  cfg.StubServer.IdleTimeout,
	}

	if err := run(ctx, logger, srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("stubd stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("stubd stopped gracefully")
}

func run(ctx context.Context, logger *slog.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting on", slog.String("address", srv.Addr))
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down HTTP server gracefully")
		return srv.Shutdown(timeoutCtx)
	}
}

package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/pm25-forecast-service/internal/adapter/http"
	"github.com/couchcryptid/pm25-forecast-service/internal/config"
	"github.com/couchcryptid/pm25-forecast-service/internal/forecast"
	"github.com/couchcryptid/pm25-forecast-service/internal/model"
	"github.com/couchcryptid/pm25-forecast-service/internal/observability"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	// Local development convenience; production sets the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// The artifact is loaded once, up front. A missing or corrupt model is fatal.
	gateway := model.NewGateway(cfg.ModelPath, logger, metrics)
	if _, err := gateway.Load(); err != nil {
		logger.Error("failed to load model", "path", cfg.ModelPath, "error", err)
		os.Exit(1)
	}

	svc := forecast.NewService(gateway, clockwork.NewRealClock(), logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, gateway, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

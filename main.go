package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ltv-advisor/config"
	httpLayer "ltv-advisor/http"
	"ltv-advisor/logger"
	"ltv-advisor/repository"
	"ltv-advisor/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ltv-advisor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		return fmt.Errorf("initialising logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	limiter, closeLimiter, err := newLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	loanHandler := httpLayer.NewLoanHandler(service.NewLoanService())
	overpayHandler := httpLayer.NewOverpayHandler(
		service.NewOverpayService(),
		service.NewExplanationService(cfg.Explanation),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      httpLayer.NewRouter(loanHandler, overpayHandler, limiter),
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeoutSeconds),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeoutSeconds),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeoutSeconds),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case sig := <-quit:
		logger.Info(ctx, "shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, config.Seconds(cfg.Server.ShutdownTimeoutSeconds))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "error during server shutdown", err)
	}

	logger.Info(ctx, "server exited")
	return nil
}

func newLimiter(ctx context.Context, cfg *config.AppConfig) (httpLayer.Limiter, func(), error) {
	window := config.Seconds(cfg.RateLimit.WindowSeconds)

	if cfg.RateLimit.Backend == config.BackendRedis {
		client, err := repository.ConnectRedis(ctx, cfg.Redis, nil)
		if err != nil {
			return nil, nil, err
		}
		limiter := httpLayer.NewRedisRateLimiter(
			repository.NewRedisCounter(client),
			cfg.RateLimit.Capacity,
			window,
			cfg.RateLimit.KeyPrefix,
		)
		return limiter, func() { _ = client.Close() }, nil
	}

	limiter := httpLayer.NewMemoryRateLimiter(cfg.RateLimit.Capacity, window)
	return limiter, limiter.Stop, nil
}

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"feedback-board/internal/adapters/report"
	"feedback-board/internal/adapters/storage"
	"feedback-board/internal/adapters/web"
	"feedback-board/internal/domain"
	"feedback-board/internal/infra/cache"
	"feedback-board/internal/infra/config"
	httpinfra "feedback-board/internal/infra/http"
	applog "feedback-board/internal/infra/log"
	"feedback-board/internal/infra/metrics"
	"feedback-board/internal/usecase/feedback"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(cfg.Remote, storage.DefaultFilePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("web: не удалось открыть хранилище")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error().Err(err).Msg("web: close storage")
		}
	}()
	if backend.Kind == storage.BackendRedis {
		logger.Info().Str("backend", backend.Kind).Msg("feedback storage: using Redis list")
	} else {
		logger.Info().Str("backend", backend.Kind).Str("path", backend.FilePath()).Msg("feedback storage: using local JSON file")
	}

	pageCache, closeCache := openPageCache(backend, logger)
	defer closeCache()

	svc := feedback.NewService(backend.Store, pageCache, cfg.PageCacheTTL, applog.Component(logger, "feedback"))
	handler := web.NewHandler(svc, report.NewFileLoader(report.DefaultPath), backend.Kind, applog.Component(logger, "web"))

	server := httpinfra.NewServer(applog.Component(logger, "http"))
	handler.Register(server.Router)

	if cfg.MetricsAddr != "" {
		metrics.StartServer(ctx, applog.Component(logger, "metrics"), cfg.MetricsAddr, cfg.Server.ShutdownTimeout)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(fmt.Sprintf(":%d", cfg.Port), httpinfra.Timeouts{
			Read:  cfg.Server.ReadTimeout,
			Write: cfg.Server.WriteTimeout,
		})
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("web: сервер остановлен")
		}
		return
	}

	logger.Info().Msg("web: остановка")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("web: graceful shutdown failed")
	}
}

// openPageCache выбирает кэш страниц под выбранное хранилище.
func openPageCache(backend storage.Backend, logger zerolog.Logger) (domain.PageCache, func()) {
	if backend.Redis != nil {
		return cache.NewRedis(backend.Redis), func() {}
	}
	memory, err := cache.NewMemory(0)
	if err != nil {
		logger.Warn().Err(err).Msg("web: page cache disabled")
		return nil, func() {}
	}
	return memory, memory.Close
}

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	StorageRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedback_storage_request_duration_seconds",
		Help:    "Длительность операций с хранилищем отзывов",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"backend", "operation", "status"})

	StorageRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_storage_request_total",
		Help: "Количество операций с хранилищем отзывов",
	}, []string{"backend", "operation", "status"})

	FeedbackSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_submissions_total",
		Help: "Отправки отзывов по источнику и результату",
	}, []string{"source", "status"})

	PageCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "page_cache_lookups_total",
		Help: "Обращения к кэшу страниц",
	}, []string{"result"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		StorageRequestDuration,
		StorageRequestTotal,
		FeedbackSubmissions,
		PageCacheLookups,
	)
}

// StartServer поднимает отдельный HTTP сервер с /metrics и гасит его
// при отмене ctx, ожидая активные запросы не дольше shutdownTimeout.
func StartServer(ctx context.Context, logger zerolog.Logger, addr string, shutdownTimeout time.Duration) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveDone := make(chan struct{})
	go func() {
		defer close(serveDone)
		logger.Info().Str("addr", addr).Msg("metrics: listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: listen failed")
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-serveDone:
			return
		}
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(stopCtx); err != nil {
			logger.Warn().Err(err).Dur("timeout", shutdownTimeout).Msg("metrics: shutdown incomplete")
		}
	}()
}

// ObserveStorageRequest записывает длительность и статус операции с хранилищем.
func ObserveStorageRequest(backend, operation string, start time.Time, err error) {
	if backend == "" {
		backend = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	status := statusOf(err)
	StorageRequestDuration.WithLabelValues(backend, operation, status).Observe(time.Since(start).Seconds())
	StorageRequestTotal.WithLabelValues(backend, operation, status).Inc()
}

// IncSubmission учитывает попытку отправки отзыва.
// status: success, invalid или error.
func IncSubmission(source, status string) {
	FeedbackSubmissions.WithLabelValues(source, status).Inc()
}

// ObservePageCache учитывает попадание или промах кэша страниц.
func ObservePageCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	PageCacheLookups.WithLabelValues(result).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

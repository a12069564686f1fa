package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server оборачивает chi.Router с базовыми middlewares.
type Server struct {
	Router chi.Router
	log    zerolog.Logger

	mu  sync.Mutex
	srv *http.Server
}

// Timeouts задаёт таймауты http.Server.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
}

// NewServer создаёт HTTP сервер.
func NewServer(logger zerolog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	return &Server{Router: r, log: logger}
}

// Start запускает http.Server и блокируется до его остановки.
func (s *Server) Start(addr string, timeouts Timeouts) error {
	if timeouts.Read == 0 {
		timeouts.Read = 15 * time.Second
	}
	if timeouts.Write == 0 {
		timeouts.Write = 15 * time.Second
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  timeouts.Read,
		WriteTimeout: timeouts.Write,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()
	s.log.Info().Str("addr", addr).Msg("HTTP сервер запущен")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown позволяет корректно завершить работу.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// RequestLogger пишет по строке zerolog на каждый запрос.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("http: request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

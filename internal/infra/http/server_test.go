package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestServerServesMetrics(t *testing.T) {
	s := NewServer(zerolog.Nop())
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServerRecoversFromPanic(t *testing.T) {
	s := NewServer(zerolog.Nop())
	s.Router.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s := NewServer(logger)
	s.Router.Get("/teapot", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Contains(t, buf.String(), `"status":418`)
	require.Contains(t, buf.String(), `"path":"/teapot"`)
}

func TestShutdownBeforeStart(t *testing.T) {
	s := NewServer(zerolog.Nop())
	require.NoError(t, s.Shutdown(context.Background()))
}

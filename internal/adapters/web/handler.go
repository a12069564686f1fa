package web

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"feedback-board/internal/domain"
	"feedback-board/internal/usecase/feedback"
)

// Handler обслуживает доску отзывов: HTML-страницу, форму и JSON API.
type Handler struct {
	feedback *feedback.Service
	reports  domain.ReportLoader
	backend  string
	log      zerolog.Logger
}

// NewHandler создаёт обработчики. reports может быть nil, тогда /api/eda не регистрируется.
func NewHandler(svc *feedback.Service, reports domain.ReportLoader, backend string, logger zerolog.Logger) *Handler {
	return &Handler{feedback: svc, reports: reports, backend: backend, log: logger}
}

// Register навешивает маршруты на роутер.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.boardPage)
	r.Post("/", h.submitForm)

	r.Route("/api", func(api chi.Router) {
		api.Get("/feedback", h.listFeedback)
		api.Post("/feedback", h.createFeedback)
		if h.reports != nil {
			api.Get("/eda", h.edaReport)
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": h.backend})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

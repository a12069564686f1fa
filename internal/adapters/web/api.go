package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"feedback-board/internal/domain"
	"feedback-board/internal/infra/metrics"
	"feedback-board/internal/usecase/feedback"
)

const maxBodyBytes = 64 << 10

type createFeedbackRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

func (h *Handler) listFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := h.feedback.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("api: read feedback")
		writeError(w, http.StatusInternalServerError, "Failed to load feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": entries})
}

func (h *Handler) createFeedback(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	req, err := decodeCreateRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		metrics.IncSubmission("api", "invalid")
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	entry, err := h.feedback.Submit(r.Context(), req.Author, req.Message)
	if err != nil {
		var verr *feedback.ValidationError
		if errors.As(err, &verr) {
			metrics.IncSubmission("api", "invalid")
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		metrics.IncSubmission("api", "error")
		h.log.Error().Err(err).Msg("api: save feedback")
		writeError(w, http.StatusInternalServerError, "Failed to save feedback")
		return
	}
	metrics.IncSubmission("api", "success")
	writeJSON(w, http.StatusCreated, map[string]domain.FeedbackEntry{"feedback": entry})
}

// decodeCreateRequest принимает ровно один JSON-объект; данные после него считаются ошибкой.
func decodeCreateRequest(body io.Reader) (createFeedbackRequest, error) {
	var req createFeedbackRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return createFeedbackRequest{}, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return createFeedbackRequest{}, errors.New("unexpected data after JSON body")
	}
	return req, nil
}

func (h *Handler) edaReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Load(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("api: load eda report")
		writeError(w, http.StatusInternalServerError, "Failed to load report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"feedback-board/internal/domain"
	"feedback-board/internal/infra/metrics"
	"feedback-board/internal/usecase/feedback"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const (
	formIdleMessage    = "We'll publish your note instantly."
	formSuccessMessage = "Thanks for the feedback!"
	formInvalidMessage = "Please fill out both your name and message."
	formFailedMessage  = "We couldn't save your feedback. Please try again."
)

type formStatus string

const (
	formIdle    formStatus = "idle"
	formSuccess formStatus = "success"
	formError   formStatus = "error"
)

type formState struct {
	Status  formStatus
	Message string
	Author  string
	Note    string
}

type boardView struct {
	Entries []domain.FeedbackEntry
	Form    formState
}

func (h *Handler) boardPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if page, ok := h.feedback.CachedPage(ctx, feedback.BoardPageKey); ok {
		metrics.ObservePageCache(true)
		writeHTML(w, http.StatusOK, page)
		return
	}
	metrics.ObservePageCache(false)

	gen := h.feedback.PageGeneration()
	page, err := h.renderBoard(r, formState{Status: formIdle, Message: formIdleMessage})
	if err != nil {
		h.log.Error().Err(err).Msg("web: render board")
		h.renderError(w, http.StatusInternalServerError, "Failed to load feedback")
		return
	}
	h.feedback.StorePage(ctx, feedback.BoardPageKey, page, gen)
	writeHTML(w, http.StatusOK, page)
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		metrics.IncSubmission("form", "invalid")
		h.respondForm(w, r, http.StatusBadRequest, formState{Status: formError, Message: formInvalidMessage})
		return
	}
	author := r.PostForm.Get("author")
	note := r.PostForm.Get("message")

	_, err := h.feedback.Submit(r.Context(), author, note)
	switch {
	case err == nil:
		metrics.IncSubmission("form", "success")
		h.respondForm(w, r, http.StatusOK, formState{Status: formSuccess, Message: formSuccessMessage})
	case errors.Is(err, domain.ErrValidation):
		metrics.IncSubmission("form", "invalid")
		h.respondForm(w, r, http.StatusBadRequest, formState{Status: formError, Message: formInvalidMessage, Author: author, Note: note})
	default:
		metrics.IncSubmission("form", "error")
		h.log.Error().Err(err).Msg("web: submit feedback")
		h.respondForm(w, r, http.StatusInternalServerError, formState{Status: formError, Message: formFailedMessage, Author: author, Note: note})
	}
}

func (h *Handler) respondForm(w http.ResponseWriter, r *http.Request, status int, state formState) {
	page, err := h.renderBoard(r, state)
	if err != nil {
		h.log.Error().Err(err).Msg("web: render board")
		h.renderError(w, http.StatusInternalServerError, "Failed to load feedback")
		return
	}
	writeHTML(w, status, page)
}

func (h *Handler) renderBoard(r *http.Request, state formState) ([]byte, error) {
	entries, err := h.feedback.List(r.Context())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "board.html", boardView{Entries: entries, Form: state}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Handler) renderError(w http.ResponseWriter, status int, msg string) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "error.html", msg); err != nil {
		http.Error(w, msg, status)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(page)
}

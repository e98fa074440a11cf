package attempt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/examflow/examflow/internal/config"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var a Attempt
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		log.WithError(err).Error("invalid attempt body")
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	recorded, err := h.service.Record(r.Context(), &a)
	switch {
	case errors.Is(err, ErrInvalidAttempt):
		config.Error(w, http.StatusBadRequest, "invalid_attempt", err.Error())
		return
	case err != nil:
		log.WithError(err).Error("failed to record attempt")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to record attempt")
		return
	}
	config.JSON(w, http.StatusCreated, recorded)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "quizId")
	attempts, err := h.service.ListByQuiz(r.Context(), quizID)
	if err != nil {
		log.WithError(err).Error("failed to list attempts")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to list attempts")
		return
	}
	if attempts == nil {
		attempts = []Attempt{}
	}
	config.JSON(w, http.StatusOK, attempts)
}

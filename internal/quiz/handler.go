package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/examflow/examflow/internal/auth"
	"github.com/examflow/examflow/internal/config"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// callerID resolves the acting user: authenticated claims win, otherwise the
// userId query parameter identifies anonymous local-profile callers.
func callerID(r *http.Request) string {
	if claims, err := auth.GetUserClaimsFromContext(r.Context()); err == nil {
		return claims.UserID
	}
	return r.URL.Query().Get("userId")
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizzes, err := h.service.ListQuizzes(r.Context(), callerID(r))
	if err != nil {
		log.WithError(err).Error("failed to list quizzes")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to list quizzes")
		return
	}
	if quizzes == nil {
		quizzes = []Quiz{}
	}
	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	q, err := h.service.GetQuiz(r.Context(), quizID, callerID(r))
	switch {
	case errors.Is(err, ErrNotFound):
		config.Error(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	case errors.Is(err, ErrForbidden):
		config.Error(w, http.StatusForbidden, "forbidden", "quiz is not accessible")
		return
	case err != nil:
		log.WithError(err).Error("failed to load quiz")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to load quiz")
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) GetPublicQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	q, err := h.service.GetPublicQuiz(r.Context(), quizID)
	switch {
	case errors.Is(err, ErrNotFound):
		config.Error(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	case err != nil:
		log.WithError(err).Error("failed to load public quiz")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to load quiz")
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) SaveQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var q Quiz
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		log.WithError(err).Error("invalid quiz body")
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	saved, err := h.service.SaveQuiz(r.Context(), &q, callerID(r))
	switch {
	case errors.Is(err, ErrForbidden):
		config.Error(w, http.StatusForbidden, "forbidden", "quiz belongs to another user")
		return
	case errors.Is(err, ErrInvalid):
		config.Error(w, http.StatusBadRequest, "invalid_quiz", err.Error())
		return
	case err != nil:
		log.WithError(err).Error("failed to save quiz")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to save quiz")
		return
	}
	config.JSON(w, http.StatusOK, saved)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	err := h.service.DeleteQuiz(r.Context(), quizID, callerID(r))
	switch {
	case errors.Is(err, ErrNotFound):
		config.Error(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	case errors.Is(err, ErrForbidden):
		config.Error(w, http.StatusForbidden, "forbidden", "only the owner can delete a quiz")
		return
	case err != nil:
		log.WithError(err).Error("failed to delete quiz")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to delete quiz")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "quiz deleted"})
}

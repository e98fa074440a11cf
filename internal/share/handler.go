package share

import (
	"errors"
	"net/http"

	"github.com/examflow/examflow/internal/auth"
	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/middlewares"
	"github.com/examflow/examflow/internal/quiz"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) PromoteQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	userID := ""
	if err == nil {
		userID = claims.UserID
	} else {
		userID = r.URL.Query().Get("userId")
	}
	if userID == "" {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "sign in to share a quiz")
		return
	}

	url, err := h.service.Promote(r.Context(), chi.URLParam(r, "id"), userID)
	switch {
	case errors.Is(err, quiz.ErrNotFound):
		config.Error(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	case errors.Is(err, ErrNotOwner), errors.Is(err, quiz.ErrForbidden):
		config.Error(w, http.StatusForbidden, "forbidden", "only the owner can share a quiz")
		return
	case err != nil:
		log.WithError(err).Error("failed to share quiz")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to share quiz")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"publicUrl": url})
}

func (h *Handler) RegisterDiscovered(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	clientID := middlewares.ClientID(r)
	if err := h.service.RegisterDiscovered(r.Context(), clientID, chi.URLParam(r, "quizId")); err != nil {
		log.WithError(err).Error("failed to register shared quiz")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to register shared quiz")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "registered"})
}

func (h *Handler) ListDiscovered(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID := ""
	if claims, err := auth.GetUserClaimsFromContext(r.Context()); err == nil {
		userID = claims.UserID
	} else {
		userID = r.URL.Query().Get("userId")
	}

	quizzes, err := h.service.ListDiscovered(r.Context(), middlewares.ClientID(r), userID)
	if err != nil {
		log.WithError(err).Error("failed to list shared quizzes")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to list shared quizzes")
		return
	}
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	config.JSON(w, http.StatusOK, quizzes)
}

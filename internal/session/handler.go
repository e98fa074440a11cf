package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/examflow/examflow/internal/auth"
	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/importer"
	"github.com/examflow/examflow/internal/quiz"
	"github.com/examflow/examflow/internal/user"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	users   user.Service
}

func NewHandler(s Service, users user.Service) *Handler {
	return &Handler{service: s, users: users}
}

func callerID(r *http.Request) string {
	if claims, err := auth.GetUserClaimsFromContext(r.Context()); err == nil {
		return claims.UserID
	}
	return r.URL.Query().Get("userId")
}

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var body struct {
		QuizID          string `json:"quizId"`
		InstantFeedback bool   `json:"instantFeedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	sess, err := h.service.Start(r.Context(), body.QuizID, callerID(r), body.InstantFeedback)
	switch {
	case errors.Is(err, quiz.ErrNotFound):
		config.Error(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	case errors.Is(err, quiz.ErrForbidden):
		config.Error(w, http.StatusForbidden, "forbidden", "quiz is not accessible")
		return
	case errors.Is(err, quiz.ErrNotPlayable):
		config.Error(w, http.StatusBadRequest, "not_playable", "quiz has no questions")
		return
	case err != nil:
		log.WithError(err).Error("failed to start session")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to start session")
		return
	}
	config.JSON(w, http.StatusCreated, sess.Snapshot())
}

func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(*Session) error) {
	log := config.WithContext(r.Context())

	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusNotFound, "not_found", "session not found")
		return
	}

	err = fn(sess)
	switch {
	case err == nil:
		config.JSON(w, http.StatusOK, sess.Snapshot())
	case errors.Is(err, ErrFinished):
		config.Error(w, http.StatusConflict, "finished", "session is already finished")
	case errors.Is(err, ErrNotCurrentQuestion):
		config.Error(w, http.StatusConflict, "stale_question", "not the current question")
	case errors.Is(err, ErrUnknownOption):
		config.Error(w, http.StatusBadRequest, "unknown_option", "option does not belong to the question")
	case errors.Is(err, ErrNoSelection):
		config.Error(w, http.StatusBadRequest, "no_selection", "select an answer first")
	case errors.Is(err, ErrDeferredOnly):
		config.Error(w, http.StatusBadRequest, "instant_mode", "answers are checked on selection in this mode")
	default:
		log.WithError(err).Error("session operation failed")
		config.Error(w, http.StatusInternalServerError, "internal_error", "session operation failed")
	}
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(*Session) error { return nil })
}

func (h *Handler) SelectOption(w http.ResponseWriter, r *http.Request) {
	var body struct {
		QuestionID string `json:"questionId"`
		OptionID   string `json:"optionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	h.withSession(w, r, func(s *Session) error {
		return s.SelectOption(body.QuestionID, body.OptionID)
	})
}

func (h *Handler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *Session) error { return s.CheckAnswer() })
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *Session) error { s.Advance(); return nil })
}

func (h *Handler) Prev(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *Session) error { s.Retreat(); return nil })
}

func (h *Handler) PressKey(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	h.withSession(w, r, func(s *Session) error { return s.PressKey(body.Key) })
}

func (h *Handler) ClosePanel(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *Session) error { s.ClosePanel(); return nil })
}

func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var body struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	result, err := h.service.Finish(r.Context(), chi.URLParam(r, "id"), body.Confirmed)
	var confirm *ConfirmRequiredError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		config.Error(w, http.StatusNotFound, "not_found", "session not found")
		return
	case errors.As(err, &confirm):
		config.JSON(w, http.StatusConflict, map[string]interface{}{
			"error":      "confirmation required",
			"code":       "confirm_required",
			"unanswered": confirm.Unanswered,
		})
		return
	case err != nil:
		log.WithError(err).Error("failed to finish session")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to finish session")
		return
	}
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	credential := h.resolveCredential(r)
	delivered, err := h.service.Explain(r.Context(), chi.URLParam(r, "id"), credential)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		config.Error(w, http.StatusNotFound, "not_found", "session not found")
		return
	case errors.Is(err, ErrFinished):
		config.Error(w, http.StatusConflict, "finished", "session is already finished")
		return
	case errors.Is(err, importer.ErrMissingCredential):
		config.Error(w, http.StatusUnauthorized, "credential_required", "an AI key is required for explanations")
		return
	case errors.Is(err, importer.ErrInvalidCredential):
		config.Error(w, http.StatusUnauthorized, "credential_invalid", "the AI key was rejected, enter a new one")
		return
	case err != nil:
		log.WithError(err).Warn("explanation call failed")
	}

	sess, serr := h.service.Get(chi.URLParam(r, "id"))
	if serr != nil {
		config.Error(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	view := sess.Snapshot()
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"delivered": delivered,
		"session":   view,
	})
}

// resolveCredential mirrors the import pipeline's key lookup order.
func (h *Handler) resolveCredential(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-AI-Key")); key != "" {
		return key
	}
	if claims, err := auth.GetUserClaimsFromContext(r.Context()); err == nil {
		if key, err := h.users.LoadAIKey(r.Context(), claims.UserID); err == nil && key != "" {
			return key
		}
	}
	return os.Getenv("DEFAULT_AI_KEY")
}

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/examflow/examflow/internal/auth"
	"github.com/examflow/examflow/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// SaveUser upserts a profile posted by the client after sign-in. Repeated
// posts for the same id are idempotent.
func (h *Handler) SaveUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var u User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	if strings.TrimSpace(u.ID) == "" {
		config.Error(w, http.StatusBadRequest, "invalid_body", "user id is required")
		return
	}

	if err := h.service.UpsertFromGoogle(r.Context(), u.ID, u.Email, u.Name, u.Picture); err != nil {
		log.WithError(err).Error("failed to upsert user")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to save user")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"id": u.ID})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	u, err := h.service.Get(r.Context(), claims.UserID)
	switch {
	case errors.Is(err, ErrNotFound):
		config.Error(w, http.StatusNotFound, "not_found", "user not found")
		return
	case err != nil:
		log.WithError(err).Error("failed to load user")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to load user")
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"user":     u,
		"hasAiKey": u.EncryptedAIKey != "",
	})
}

func (h *Handler) SaveAIKey(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	if strings.TrimSpace(body.Key) == "" {
		config.Error(w, http.StatusBadRequest, "invalid_body", "key is required")
		return
	}

	if err := h.service.SaveAIKey(r.Context(), claims.UserID, body.Key); err != nil {
		if errors.Is(err, ErrNotFound) {
			config.Error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		log.WithError(err).Error("failed to store AI key")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to store AI key")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "AI key stored"})
}

func (h *Handler) ClearAIKey(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	if err := h.service.ClearAIKey(r.Context(), claims.UserID); err != nil {
		log.WithError(err).Error("failed to clear AI key")
		config.Error(w, http.StatusInternalServerError, "internal_error", "failed to clear AI key")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "AI key cleared"})
}

package importer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/examflow/examflow/internal/auth"
	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/user"
)

type Handler struct {
	service Service
	users   user.Service
}

func NewHandler(s Service, users user.Service) *Handler {
	return &Handler{service: s, users: users}
}

// credentialSource tracks where the resolved key came from so an invalid
// stored key can be cleared.
type credentialSource int

const (
	credNone credentialSource = iota
	credHeader
	credStored
	credDefault
)

// resolveCredential picks the AI key for a request: an explicit header wins,
// then the user's stored key, then the server-wide default.
func (h *Handler) resolveCredential(ctx context.Context, r *http.Request) (string, credentialSource) {
	if key := strings.TrimSpace(r.Header.Get("X-AI-Key")); key != "" {
		return key, credHeader
	}
	if claims, err := auth.GetUserClaimsFromContext(ctx); err == nil {
		if key, err := h.users.LoadAIKey(ctx, claims.UserID); err == nil && key != "" {
			return key, credStored
		}
	}
	if key := os.Getenv("DEFAULT_AI_KEY"); key != "" {
		return key, credDefault
	}
	return "", credNone
}

func (h *Handler) ImportQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	credential, source := h.resolveCredential(r.Context(), r)

	result, err := h.service.ImportQuestions(r.Context(), credential, body.Text)
	switch {
	case errors.Is(err, ErrEmptyInput):
		config.Error(w, http.StatusBadRequest, "empty_input", "paste the question text first")
		return
	case errors.Is(err, ErrMissingCredential):
		config.Error(w, http.StatusUnauthorized, "credential_required", "an AI key is required for import")
		return
	case errors.Is(err, ErrInvalidCredential):
		h.discardBadStoredKey(r, source)
		config.Error(w, http.StatusUnauthorized, "credential_invalid", "the AI key was rejected, enter a new one")
		return
	case errors.Is(err, ErrParse):
		config.Error(w, http.StatusBadRequest, "parse_error", "could not extract questions, check the text format")
		return
	case err != nil:
		log.WithError(err).Error("import failed")
		config.Error(w, http.StatusInternalServerError, "internal_error", "import failed")
		return
	}

	config.JSON(w, http.StatusOK, result)
}

// discardBadStoredKey clears a stored credential the provider rejected, so
// the next request prompts for a fresh one. Best effort.
func (h *Handler) discardBadStoredKey(r *http.Request, source credentialSource) {
	if source != credStored {
		return
	}
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return
	}
	if err := h.users.ClearAIKey(r.Context(), claims.UserID); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("failed to clear rejected AI key")
	}
}

package attempt

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.RecordAttempt)
	r.Get("/{quizId}", h.ListAttempts)
	return r
}

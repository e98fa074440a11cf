package share

import (
	"net/http"

	"github.com/examflow/examflow/internal/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.OptionalAuth)

	r.Get("/", h.ListDiscovered)
	r.Post("/{quizId}", h.RegisterDiscovered)
	return r
}

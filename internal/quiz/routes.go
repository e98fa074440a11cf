package quiz

import (
	"net/http"

	"github.com/examflow/examflow/internal/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.OptionalAuth)

	r.Get("/", h.ListQuizzes)
	r.Post("/", h.SaveQuiz)
	// Share-link reads resolve before the id route and skip auth entirely.
	r.Get("/public/{id}", h.GetPublicQuiz)
	r.Get("/{id}", h.GetQuiz)
	r.Delete("/{id}", h.DeleteQuiz)
	return r
}

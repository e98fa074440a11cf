package user

import (
	"net/http"

	"github.com/examflow/examflow/internal/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.SaveUser)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/me", h.GetMe)
		r.Put("/me/ai-key", h.SaveAIKey)
		r.Delete("/me/ai-key", h.ClearAIKey)
	})
	return r
}

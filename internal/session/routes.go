package session

import (
	"net/http"

	"github.com/examflow/examflow/internal/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.OptionalAuth)

	r.Post("/", h.StartSession)
	r.Get("/{id}", h.GetSession)
	r.Post("/{id}/select", h.SelectOption)
	r.Post("/{id}/check", h.CheckAnswer)
	r.Post("/{id}/next", h.Next)
	r.Post("/{id}/prev", h.Prev)
	r.Post("/{id}/key", h.PressKey)
	r.Post("/{id}/finish", h.Finish)
	r.Post("/{id}/explain", h.Explain)
	r.Post("/{id}/panel/close", h.ClosePanel)
	return r
}

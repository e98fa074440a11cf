package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// clientCookie carries the per-browser id that keys the share registry.
const clientCookie = "examflow_client"

type contextKey string

const clientIDKey contextKey = "clientID"

// ClientIDMiddleware mints a stable per-client id on first contact and
// carries it in the request context afterwards.
func ClientIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(clientCookie); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     clientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   365 * 24 * 3600,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), clientIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientID returns the per-client id attached by ClientIDMiddleware.
func ClientID(r *http.Request) string {
	id, _ := r.Context().Value(clientIDKey).(string)
	return id
}

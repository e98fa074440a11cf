package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/examflow/examflow/internal/attempt"
	"github.com/examflow/examflow/internal/auth"
	"github.com/examflow/examflow/internal/importer"
	"github.com/examflow/examflow/internal/middlewares"
	"github.com/examflow/examflow/internal/quiz"
	"github.com/examflow/examflow/internal/session"
	"github.com/examflow/examflow/internal/share"
	"github.com/examflow/examflow/internal/user"
)

type RouterConfig struct {
	QuizHandler     *quiz.Handler
	AttemptHandler  *attempt.Handler
	UserHandler     *user.Handler
	ImporterHandler *importer.Handler
	SessionHandler  *session.Handler
	ShareHandler    *share.Handler
	GoogleHandler   *auth.GoogleHandler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.ClientIDMiddleware)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", cfg.GoogleHandler.Login)
		r.Get("/google/callback", cfg.GoogleHandler.Callback)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
	r.Mount("/attempts", attempt.Routes(cfg.AttemptHandler))
	r.Mount("/users", user.Routes(cfg.UserHandler))
	r.Mount("/import", importer.Routes(cfg.ImporterHandler))
	r.Mount("/sessions", session.Routes(cfg.SessionHandler))
	r.Mount("/shared", share.Routes(cfg.ShareHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth)
		r.Post("/quizzes/{id}/promote", cfg.ShareHandler.PromoteQuiz)
	})

	return r
}

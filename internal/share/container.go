package share

import (
	"github.com/examflow/examflow/internal/localstore"
	"github.com/examflow/examflow/internal/quiz"
)

type ShareContainer struct {
	Handler *Handler
	Service Service
}

func NewShareContainer(quizzes quiz.Service, registry *localstore.Store) *ShareContainer {
	service := NewService(quizzes, registry)
	handler := NewHandler(service)

	return &ShareContainer{
		Handler: handler,
		Service: service,
	}
}

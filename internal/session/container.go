package session

import (
	"github.com/examflow/examflow/internal/attempt"
	"github.com/examflow/examflow/internal/importer"
	"github.com/examflow/examflow/internal/quiz"
	"github.com/examflow/examflow/internal/user"
)

type SessionContainer struct {
	Handler *Handler
	Service Service
}

func NewSessionContainer(quizzes quiz.Service, attempts attempt.Service, ai importer.Service, users user.Service) *SessionContainer {
	store := NewStore()
	service := NewService(store, quizzes, attempts, ai)
	handler := NewHandler(service, users)

	return &SessionContainer{
		Handler: handler,
		Service: service,
	}
}

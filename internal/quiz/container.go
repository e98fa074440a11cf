package quiz

import (
	"github.com/examflow/examflow/internal/localstore"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizContainer struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewQuizContainer(db *mongo.Database, local *localstore.Store, baseURL string) *QuizContainer {
	repo := NewFallbackRepository(NewMongoRepository(db), local)
	service := NewService(repo, baseURL)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}

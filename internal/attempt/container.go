package attempt

import (
	"github.com/examflow/examflow/internal/localstore"
	"go.mongodb.org/mongo-driver/mongo"
)

type AttemptContainer struct {
	Handler *Handler
	Service Service
}

func NewAttemptContainer(db *mongo.Database, local *localstore.Store) *AttemptContainer {
	repo := NewFallbackRepository(NewMongoRepository(db), local)
	service := NewService(repo)
	handler := NewHandler(service)

	return &AttemptContainer{
		Handler: handler,
		Service: service,
	}
}

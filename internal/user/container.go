package user

import "go.mongodb.org/mongo-driver/mongo"

type UserContainer struct {
	Handler *Handler
	Service Service
}

func NewUserContainer(db *mongo.Database) *UserContainer {
	repo := NewMongoRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &UserContainer{
		Handler: handler,
		Service: service,
	}
}

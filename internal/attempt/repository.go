package attempt

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Append(ctx context.Context, a *Attempt) error
	// ListByQuiz returns the attempt history of one quiz, newest first.
	ListByQuiz(ctx context.Context, quizID string) ([]Attempt, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("attempts")}
}

func (r *mongoRepository) Append(ctx context.Context, a *Attempt) error {
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *mongoRepository) ListByQuiz(ctx context.Context, quizID string) ([]Attempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"quizId": quizID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []Attempt
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

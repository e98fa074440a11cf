package quiz

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	// List returns quizzes owned by userID plus demo-owned plus public ones,
	// newest first. With an empty userID only demo and public quizzes return.
	List(ctx context.Context, userID string) ([]Quiz, error)
	Get(ctx context.Context, id string) (*Quiz, error)
	// Upsert is a full-replace save keyed by quiz id.
	Upsert(ctx context.Context, q *Quiz) error
	Delete(ctx context.Context, id string) error
}

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("quizzes")}
}

func visibilityFilter(userID string) bson.M {
	or := []bson.M{
		{"userId": DemoUserID},
		{"isPublic": true},
	}
	if userID != "" {
		or = append(or, bson.M{"userId": userID})
	}
	return bson.M{"$or": or}
}

func (r *mongoRepository) List(ctx context.Context, userID string) ([]Quiz, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, visibilityFilter(userID), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var quizzes []Quiz
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *mongoRepository) Get(ctx context.Context, id string) (*Quiz, error) {
	var q Quiz
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *mongoRepository) Upsert(ctx context.Context, q *Quiz) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": q.ID}, q, opts)
	return err
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

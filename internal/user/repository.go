package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Get(ctx context.Context, id string) (*User, error)
	// UpsertProfile writes the profile fields without touching the stored AI
	// credential.
	UpsertProfile(ctx context.Context, u *User) error
	SetEncryptedAIKey(ctx context.Context, id, encrypted string) error
	ClearEncryptedAIKey(ctx context.Context, id string) error
}

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("users")}
}

func (r *mongoRepository) Get(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoRepository) UpsertProfile(ctx context.Context, u *User) error {
	update := bson.M{
		"$set": bson.M{
			"email":   u.Email,
			"name":    u.Name,
			"picture": u.Picture,
		},
		"$setOnInsert": bson.M{
			"createdAt": time.Now().UnixMilli(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": u.ID}, update, opts)
	return err
}

func (r *mongoRepository) SetEncryptedAIKey(ctx context.Context, id, encrypted string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"encryptedAiKey": encrypted},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepository) ClearEncryptedAIKey(ctx context.Context, id string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$unset": bson.M{"encryptedAiKey": ""},
	})
	return err
}

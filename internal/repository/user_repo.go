package repository

import (
	"context"
	"errors"
	"fmt"
	lb "library_backend"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{coll: database.Collection("users")}
}

var _ UserStore = (*UserRepository)(nil)

// FindByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*lb.User, error) {
	var u lb.User
	err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &u, nil
}

// FindByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*lb.User, error) {
	var u lb.User
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by id %s: %w", id.Hex(), err)
	}
	return &u, nil
}

// Create inserts a new user. The unique index on username rejects duplicates.
func (r *UserRepository) Create(ctx context.Context, user lb.User) (*lb.User, error) {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("insert user %q: %w", user.Username, err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return &user, nil
}

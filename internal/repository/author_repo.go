package repository

import (
	"context"
	"errors"
	"fmt"
	lb "library_backend"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuthorRepository struct {
	coll *mongo.Collection
}

func NewAuthorRepository(database *mongo.Database) *AuthorRepository {
	return &AuthorRepository{coll: database.Collection("authors")}
}

// Ensure implementation of AuthorStore interface at compile time.
var _ AuthorStore = (*AuthorRepository)(nil)

// FindByName fetches an author by name. Returns (nil, nil) if not found.
func (r *AuthorRepository) FindByName(ctx context.Context, name string) (*lb.Author, error) {
	var a lb.Author
	err := r.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find author %q: %w", name, err)
	}
	return &a, nil
}

// Create inserts a new author. The unique index on name rejects duplicates.
func (r *AuthorRepository) Create(ctx context.Context, name string, born *int32) (*lb.Author, error) {
	a := lb.Author{Name: name, Born: born}
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("insert author %q: %w", name, err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return &a, nil
}

// SetBorn updates an author's birth year and returns the updated document.
// Returns (nil, nil) if no author with that name exists.
func (r *AuthorRepository) SetBorn(ctx context.Context, name string, born int32) (*lb.Author, error) {
	var a lb.Author
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "name", Value: name}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "born", Value: born}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update author %q: %w", name, err)
	}
	return &a, nil
}

// ListWithBookCount returns every author with the count of books referencing
// it, computed in a single aggregation pass.
func (r *AuthorRepository) ListWithBookCount(ctx context.Context) ([]lb.AuthorCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "books"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "author"},
			{Key: "as", Value: "books"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "born", Value: 1},
			{Key: "bookCount", Value: bson.D{{Key: "$size", Value: "$books"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate authors with book counts: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	counts := make([]lb.AuthorCount, 0)
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode author counts: %w", err)
	}
	return counts, nil
}

// Count returns the raw author document count.
func (r *AuthorRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return n, nil
}

package repository

import (
	"context"
	"fmt"
	lb "library_backend"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(database *mongo.Database) *BookRepository {
	return &BookRepository{coll: database.Collection("books")}
}

var _ BookStore = (*BookRepository)(nil)

// Create inserts a new book. The caller provides the resolved author so the
// returned value is fully shaped without a second read.
func (r *BookRepository) Create(ctx context.Context, book lb.Book) (*lb.Book, error) {
	if book.Genres == nil {
		book.Genres = []string{}
	}
	doc := bson.D{
		{Key: "title", Value: book.Title},
		{Key: "published", Value: book.Published},
		{Key: "author", Value: book.AuthorID},
		{Key: "genres", Value: book.Genres},
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert book %q: %w", book.Title, err)
	}
	book.ID = res.InsertedID.(primitive.ObjectID)
	return &book, nil
}

// Find returns books matching the filter, each with its author reference
// resolved. Filter clauses are AND-combined.
func (r *BookRepository) Find(ctx context.Context, filter BookFilter) ([]lb.Book, error) {
	match := bson.D{}
	if filter.AuthorID != nil {
		match = append(match, bson.E{Key: "author", Value: *filter.AuthorID})
	}
	if filter.Genre != nil {
		match = append(match, bson.E{Key: "genres", Value: bson.D{
			{Key: "$in", Value: bson.A{*filter.Genre}},
		}})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "authors"},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorDoc"},
		}}},
		{{Key: "$unwind", Value: "$authorDoc"}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	books := make([]lb.Book, 0)
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	for i := range books {
		if books[i].Genres == nil {
			books[i].Genres = []string{}
		}
	}
	return books, nil
}

// ListAllGenres returns the union of every book's genres, de-duplicated,
// first occurrence order preserved.
func (r *BookRepository) ListAllGenres(ctx context.Context) ([]string, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list books for genres: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	seen := make(map[string]struct{})
	genres := make([]string, 0)
	for cursor.Next(ctx) {
		var b lb.Book
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("decode book for genres: %w", err)
		}
		for _, g := range b.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate books for genres: %w", err)
	}
	return genres, nil
}

// Count returns the raw book document count.
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

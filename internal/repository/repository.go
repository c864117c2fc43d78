package repository

import (
	"context"
	lb "library_backend"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthorStore is the document-level surface for author records.
type AuthorStore interface {
	FindByName(ctx context.Context, name string) (*lb.Author, error)
	Create(ctx context.Context, name string, born *int32) (*lb.Author, error)
	SetBorn(ctx context.Context, name string, born int32) (*lb.Author, error)
	ListWithBookCount(ctx context.Context) ([]lb.AuthorCount, error)
	Count(ctx context.Context) (int64, error)
}

// BookFilter narrows a book lookup. Clauses are AND-combined; a nil field
// means no constraint.
type BookFilter struct {
	AuthorID *primitive.ObjectID
	Genre    *string
}

// BookStore is the document-level surface for book records. Reads resolve
// the author reference eagerly.
type BookStore interface {
	Create(ctx context.Context, book lb.Book) (*lb.Book, error)
	Find(ctx context.Context, filter BookFilter) ([]lb.Book, error)
	ListAllGenres(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// UserStore is the document-level surface for user records.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*lb.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*lb.User, error)
	Create(ctx context.Context, user lb.User) (*lb.User, error)
}

type Repository struct {
	Authors AuthorStore
	Books   BookStore
	Users   UserStore
}

func NewRepository(database *mongo.Database) *Repository {
	return &Repository{
		Authors: NewAuthorRepository(database),
		Books:   NewBookRepository(database),
		Users:   NewUserRepository(database),
	}
}

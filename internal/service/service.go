package service

import (
	"context"
	lb "library_backend"
	"time"

	"library_backend/internal/pubsub"
	"library_backend/internal/repository"
)

// Authorization covers user provisioning and session tokens.
type Authorization interface {
	CreateUser(ctx context.Context, username, favoriteGenre string) (*lb.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ResolveUser(ctx context.Context, token string) (*lb.User, error)
}

// AddBookInput carries the addBook mutation arguments. Author is the
// author's name, resolved to a reference before the write.
type AddBookInput struct {
	Title     string
	Published int32
	Author    string
	Genres    []string
}

// Library covers the book and author operations: validation, composition of
// store calls and response shaping.
type Library interface {
	AddAuthor(ctx context.Context, name string, born *int32) (*lb.Author, error)
	EditAuthor(ctx context.Context, name string, born int32) (*lb.Author, error)
	AllAuthors(ctx context.Context) ([]lb.AuthorCount, error)
	AuthorCount(ctx context.Context) (int32, error)

	AddBook(ctx context.Context, in AddBookInput) (*lb.Book, error)
	AllBooks(ctx context.Context, author, genre *string) ([]lb.Book, error)
	AllGenres(ctx context.Context) ([]string, error)
	BookCount(ctx context.Context) (int32, error)
}

// AuthConfig holds the externally supplied credential settings.
type AuthConfig struct {
	SigningKey string
	// InitialPassword is hashed per user at creation time; the createUser
	// surface carries no password argument, so credentials are provisioned
	// out-of-band and rotated outside this system.
	InitialPassword string
	TokenTTL        time.Duration
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Library
}

func NewService(repos *repository.Repository, broker *pubsub.Broker, cfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg),
		Library:       NewLibraryService(repos.Authors, repos.Books, broker),
	}
}

package service

import (
	"context"
	"fmt"
	lb "library_backend"

	"library_backend/internal/apperr"
	"library_backend/internal/pubsub"
	"library_backend/internal/repository"
)

// Input length rules checked before any store write.
const (
	minAuthorNameLen = 4
	minBookTitleLen  = 5
)

// LibraryService composes the author and book store adapters and publishes
// successful book writes to the fan-out broker.
type LibraryService struct {
	authors repository.AuthorStore
	books   repository.BookStore
	broker  *pubsub.Broker
}

func NewLibraryService(authors repository.AuthorStore, books repository.BookStore, broker *pubsub.Broker) *LibraryService {
	return &LibraryService{authors: authors, books: books, broker: broker}
}

var _ Library = (*LibraryService)(nil)

// AddAuthor validates the name and creates the author. A store constraint
// violation (duplicate name) surfaces as a validation error.
func (s *LibraryService) AddAuthor(ctx context.Context, name string, born *int32) (*lb.Author, error) {
	if len(name) < minAuthorNameLen {
		return nil, apperr.Validation("author's name must be at least 4 characters long")
	}
	author, err := s.authors.Create(ctx, name, born)
	if err != nil {
		return nil, apperr.ValidationWithInput("adding author failed", name)
	}
	return author, nil
}

// EditAuthor sets the author's birth year. A missing author yields
// (nil, nil), not an error; addBook's missing-author case is a not-found
// error instead, and both behaviors are pinned by callers.
func (s *LibraryService) EditAuthor(ctx context.Context, name string, born int32) (*lb.Author, error) {
	author, err := s.authors.SetBorn(ctx, name, born)
	if err != nil {
		return nil, fmt.Errorf("edit author: %w", err)
	}
	return author, nil
}

// AllAuthors returns every author with its book count via a single
// aggregation pass.
func (s *LibraryService) AllAuthors(ctx context.Context) ([]lb.AuthorCount, error) {
	counts, err := s.authors.ListWithBookCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return counts, nil
}

func (s *LibraryService) AuthorCount(ctx context.Context) (int32, error) {
	n, err := s.authors.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

// AddBook resolves the author reference, validates the title, writes the
// book and notifies the fan-out with the shaped result. All checks run
// before the write so a rejected input never leaves a partial document.
func (s *LibraryService) AddBook(ctx context.Context, in AddBookInput) (*lb.Book, error) {
	author, err := s.authors.FindByName(ctx, in.Author)
	if err != nil {
		return nil, fmt.Errorf("resolve author for new book: %w", err)
	}
	if author == nil {
		return nil, apperr.NotFound("author %q not found", in.Author)
	}
	if len(in.Title) < minBookTitleLen {
		return nil, apperr.Validation("book title must be at least 5 characters long")
	}

	genres := in.Genres
	if genres == nil {
		genres = []string{}
	}
	book, err := s.books.Create(ctx, lb.Book{
		Title:     in.Title,
		Published: in.Published,
		AuthorID:  author.ID,
		Author:    author,
		Genres:    genres,
	})
	if err != nil {
		return nil, apperr.ValidationWithInput("adding new book failed", in.Title)
	}

	s.broker.Publish(*book)
	return book, nil
}

// AllBooks returns books filtered by author name and genre, AND-combined.
// An author name that resolves to no author yields the empty set rather
// than an error.
func (s *LibraryService) AllBooks(ctx context.Context, authorName, genre *string) ([]lb.Book, error) {
	var filter repository.BookFilter
	if authorName != nil {
		author, err := s.authors.FindByName(ctx, *authorName)
		if err != nil {
			return nil, fmt.Errorf("resolve author filter: %w", err)
		}
		if author == nil {
			return []lb.Book{}, nil
		}
		filter.AuthorID = &author.ID
	}
	filter.Genre = genre

	books, err := s.books.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// AllGenres returns the de-duplicated union of every book's genres.
func (s *LibraryService) AllGenres(ctx context.Context) ([]string, error) {
	genres, err := s.books.ListAllGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

func (s *LibraryService) BookCount(ctx context.Context) (int32, error) {
	n, err := s.books.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

package handlers

import (
	"context"
	lb "library_backend"

	"library_backend/internal/service"
)

// Hand-rolled service mocks for handler tests.

type mockAuth struct {
	CreateUserFn  func(username, favoriteGenre string) (*lb.User, error)
	LoginFn       func(username, password string) (string, error)
	ResolveUserFn func(token string) (*lb.User, error)
}

func (m *mockAuth) CreateUser(_ context.Context, username, favoriteGenre string) (*lb.User, error) {
	return m.CreateUserFn(username, favoriteGenre)
}

func (m *mockAuth) Login(_ context.Context, username, password string) (string, error) {
	return m.LoginFn(username, password)
}

func (m *mockAuth) ResolveUser(_ context.Context, token string) (*lb.User, error) {
	return m.ResolveUserFn(token)
}

type mockLibrary struct {
	AddAuthorFn   func(name string, born *int32) (*lb.Author, error)
	EditAuthorFn  func(name string, born int32) (*lb.Author, error)
	AllAuthorsFn  func() ([]lb.AuthorCount, error)
	AuthorCountFn func() (int32, error)
	AddBookFn     func(in service.AddBookInput) (*lb.Book, error)
	AllBooksFn    func(author, genre *string) ([]lb.Book, error)
	AllGenresFn   func() ([]string, error)
	BookCountFn   func() (int32, error)
}

func (m *mockLibrary) AddAuthor(_ context.Context, name string, born *int32) (*lb.Author, error) {
	return m.AddAuthorFn(name, born)
}

func (m *mockLibrary) EditAuthor(_ context.Context, name string, born int32) (*lb.Author, error) {
	return m.EditAuthorFn(name, born)
}

func (m *mockLibrary) AllAuthors(_ context.Context) ([]lb.AuthorCount, error) {
	return m.AllAuthorsFn()
}

func (m *mockLibrary) AuthorCount(_ context.Context) (int32, error) {
	return m.AuthorCountFn()
}

func (m *mockLibrary) AddBook(_ context.Context, in service.AddBookInput) (*lb.Book, error) {
	return m.AddBookFn(in)
}

func (m *mockLibrary) AllBooks(_ context.Context, author, genre *string) ([]lb.Book, error) {
	return m.AllBooksFn(author, genre)
}

func (m *mockLibrary) AllGenres(_ context.Context) ([]string, error) {
	return m.AllGenresFn()
}

func (m *mockLibrary) BookCount(_ context.Context) (int32, error) {
	return m.BookCountFn()
}

package graph

import (
	lb "library_backend"

	graphql "github.com/graph-gophers/graphql-go"
)

// Wrapper resolvers shaping domain values into the schema types. Each is
// total over its declared output: a bookResolver always yields a non-null
// author and a non-null genres container.

type authorResolver struct {
	author lb.Author
}

func (r *authorResolver) Name() string { return r.author.Name }
func (r *authorResolver) Born() *int32 { return r.author.Born }
func (r *authorResolver) ID() graphql.ID { return graphql.ID(r.author.ID.Hex()) }

type genresResolver struct {
	genres []string
}

func (r *genresResolver) Genres() []string {
	if r.genres == nil {
		return []string{}
	}
	return r.genres
}

type bookResolver struct {
	book lb.Book
}

func (r *bookResolver) Title() string { return r.book.Title }
func (r *bookResolver) Published() int32 { return r.book.Published }
func (r *bookResolver) ID() graphql.ID { return graphql.ID(r.book.ID.Hex()) }

func (r *bookResolver) Author() *authorResolver {
	if r.book.Author == nil {
		// Shaped before the store join only on the create path, where the
		// author is always attached; guard anyway so the field stays total.
		return &authorResolver{author: lb.Author{ID: r.book.AuthorID}}
	}
	return &authorResolver{author: *r.book.Author}
}

func (r *bookResolver) Genres() *genresResolver {
	return &genresResolver{genres: r.book.Genres}
}

type authorCountResolver struct {
	count lb.AuthorCount
}

func (r *authorCountResolver) Name() string { return r.count.Name }
func (r *authorCountResolver) BookCount() int32 { return r.count.BookCount }
func (r *authorCountResolver) Born() *int32 { return r.count.Born }

type userResolver struct {
	user lb.User
}

func (r *userResolver) Username() string { return r.user.Username }
func (r *userResolver) FavoriteGenre() string { return r.user.FavoriteGenre }
func (r *userResolver) ID() graphql.ID { return graphql.ID(r.user.ID.Hex()) }

type tokenResolver struct {
	value string
}

func (r *tokenResolver) Value() string { return r.value }

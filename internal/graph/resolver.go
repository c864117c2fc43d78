package graph

import (
	"context"
	lb "library_backend"

	"library_backend/internal/apperr"
	"library_backend/internal/pubsub"
	"library_backend/internal/service"

	graphql "github.com/graph-gophers/graphql-go"
)

// Resolver is the root of the query, mutation and subscription trees. It
// dispatches to the services and shapes their results into the schema types.
type Resolver struct {
	auth    service.Authorization
	library service.Library
	broker  *pubsub.Broker
}

func NewResolver(svc *service.Service, broker *pubsub.Broker) *Resolver {
	return &Resolver{auth: svc.Authorization, library: svc.Library, broker: broker}
}

// NewSchema parses the SDL against a root resolver over svc.
func NewSchema(svc *service.Service, broker *pubsub.Broker) *graphql.Schema {
	return graphql.MustParseSchema(Schema, NewResolver(svc, broker))
}

// requireUser guards the mutations that demand an authenticated caller.
func requireUser(ctx context.Context) (*lb.User, error) {
	user := CurrentUser(ctx)
	if user == nil {
		return nil, apperr.Authentication("not authenticated")
	}
	return user, nil
}

//
// Query
//

func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	return r.library.BookCount(ctx)
}

func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	return r.library.AuthorCount(ctx)
}

func (r *Resolver) AllBooks(ctx context.Context, args struct {
	Author *string
	Genres *string
}) ([]*bookResolver, error) {
	books, err := r.library.AllBooks(ctx, args.Author, args.Genres)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*bookResolver, 0, len(books))
	for _, b := range books {
		resolvers = append(resolvers, &bookResolver{book: b})
	}
	return resolvers, nil
}

func (r *Resolver) AllAuthors(ctx context.Context) ([]*authorCountResolver, error) {
	counts, err := r.library.AllAuthors(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*authorCountResolver, 0, len(counts))
	for _, c := range counts {
		resolvers = append(resolvers, &authorCountResolver{count: c})
	}
	return resolvers, nil
}

func (r *Resolver) Me(ctx context.Context) *userResolver {
	user := CurrentUser(ctx)
	if user == nil {
		return nil
	}
	return &userResolver{user: *user}
}

func (r *Resolver) AllGenres(ctx context.Context) (*genresResolver, error) {
	genres, err := r.library.AllGenres(ctx)
	if err != nil {
		return nil, err
	}
	return &genresResolver{genres: genres}, nil
}

//
// Mutation
//

func (r *Resolver) AddBook(ctx context.Context, args struct {
	Title     string
	Published int32
	Author    string
	Genres    []string
}) (*bookResolver, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	book, err := r.library.AddBook(ctx, service.AddBookInput{
		Title:     args.Title,
		Published: args.Published,
		Author:    args.Author,
		Genres:    args.Genres,
	})
	if err != nil {
		return nil, err
	}
	return &bookResolver{book: *book}, nil
}

func (r *Resolver) EditAuthor(ctx context.Context, args struct {
	Name string
	Born int32
}) (*authorResolver, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	author, err := r.library.EditAuthor(ctx, args.Name, args.Born)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, nil
	}
	return &authorResolver{author: *author}, nil
}

func (r *Resolver) AddAuthor(ctx context.Context, args struct {
	Name string
	Born *int32
}) (*authorResolver, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	author, err := r.library.AddAuthor(ctx, args.Name, args.Born)
	if err != nil {
		return nil, err
	}
	return &authorResolver{author: *author}, nil
}

func (r *Resolver) CreateUser(ctx context.Context, args struct {
	Username      string
	FavoriteGenre string
}) (*userResolver, error) {
	user, err := r.auth.CreateUser(ctx, args.Username, args.FavoriteGenre)
	if err != nil {
		return nil, err
	}
	return &userResolver{user: *user}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Username string
	Password string
}) (*tokenResolver, error) {
	token, err := r.auth.Login(ctx, args.Username, args.Password)
	if err != nil {
		return nil, err
	}
	return &tokenResolver{value: token}, nil
}

//
// Subscription
//

// BookAdded streams every book added while the subscriber is connected.
// Events published before the subscription are never delivered.
func (r *Resolver) BookAdded(ctx context.Context) (<-chan *bookResolver, error) {
	events := r.broker.Subscribe(ctx)
	out := make(chan *bookResolver)
	go func() {
		defer close(out)
		for book := range events {
			select {
			case out <- &bookResolver{book: book}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

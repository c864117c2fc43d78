package library_backend

import "go.mongodb.org/mongo-driver/bson/primitive"

// Author is a book author document.
type Author struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Born *int32             `bson:"born,omitempty" json:"born,omitempty"` // birth year, unknown if nil
}

// Book references its author by id; reads resolve the reference eagerly
// into Author via the store's lookup stage.
type Book struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Published int32              `bson:"published" json:"published"`
	AuthorID  primitive.ObjectID `bson:"author" json:"-"`
	Author    *Author            `bson:"authorDoc,omitempty" json:"author,omitempty"`
	Genres    []string           `bson:"genres" json:"genres"`
}

// AuthorCount is the aggregate row behind allAuthors. Never stored.
type AuthorCount struct {
	Name      string `bson:"name" json:"name"`
	Born      *int32 `bson:"born,omitempty" json:"born,omitempty"`
	BookCount int32  `bson:"bookCount" json:"bookCount"`
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username      string             `bson:"username" json:"username"`
	FavoriteGenre string             `bson:"favoriteGenre" json:"favoriteGenre"`
	PasswordHash  string             `bson:"passwordHash" json:"-"` // don’t expose hash
}

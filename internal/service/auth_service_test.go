package service

import (
	"context"
	"errors"
	lb "library_backend"
	"testing"
	"time"

	"library_backend/internal/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// mockUserStore is a lightweight in-test mock for repository.UserStore.
type mockUserStore struct {
	FindByUsernameFn func(username string) (*lb.User, error)
	FindByIDFn       func(id primitive.ObjectID) (*lb.User, error)
	CreateFn         func(user lb.User) (*lb.User, error)

	createCalls []lb.User
}

func (m *mockUserStore) FindByUsername(_ context.Context, username string) (*lb.User, error) {
	return m.FindByUsernameFn(username)
}

func (m *mockUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*lb.User, error) {
	return m.FindByIDFn(id)
}

func (m *mockUserStore) Create(_ context.Context, user lb.User) (*lb.User, error) {
	m.createCalls = append(m.createCalls, user)
	return m.CreateFn(user)
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		SigningKey:      "test-signing-key",
		InitialPassword: "secret",
		TokenTTL:        time.Hour,
	}
}

func TestAuthService_CreateUser_StoresSaltedHashOfInitialPassword(t *testing.T) {
	store := &mockUserStore{
		CreateFn: func(user lb.User) (*lb.User, error) {
			user.ID = primitive.NewObjectID()
			return &user, nil
		},
	}
	svc := NewAuthService(store, testAuthConfig())

	user, err := svc.CreateUser(context.Background(), "elaine", "scifi")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "elaine" || user.FavoriteGenre != "scifi" {
		t.Fatalf("unexpected user %+v", user)
	}

	if len(store.createCalls) != 1 {
		t.Fatalf("expected 1 store write, got %d", len(store.createCalls))
	}
	stored := store.createCalls[0]
	if stored.PasswordHash == "secret" || stored.PasswordHash == "" {
		t.Fatal("password must be stored hashed, never in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not verify the initial password: %v", err)
	}
}

func TestAuthService_CreateUser_StoreFailureIsValidationError(t *testing.T) {
	store := &mockUserStore{
		CreateFn: func(lb.User) (*lb.User, error) {
			return nil, errors.New("E11000 duplicate key")
		},
	}
	svc := NewAuthService(store, testAuthConfig())

	_, err := svc.CreateUser(context.Background(), "elaine", "scifi")
	if !apperr.IsCode(err, apperr.CodeBadUserInput) {
		t.Fatalf("expected BAD_USER_INPUT, got %v", err)
	}
}

func TestAuthService_LoginRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	known := &lb.User{
		ID:            primitive.NewObjectID(),
		Username:      "elaine",
		FavoriteGenre: "scifi",
		PasswordHash:  string(hash),
	}
	store := &mockUserStore{
		FindByUsernameFn: func(username string) (*lb.User, error) {
			if username == known.Username {
				return known, nil
			}
			return nil, nil
		},
		FindByIDFn: func(id primitive.ObjectID) (*lb.User, error) {
			if id == known.ID {
				return known, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(store, testAuthConfig())

	token, err := svc.Login(context.Background(), "elaine", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	resolved, err := svc.ResolveUser(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if resolved == nil || resolved.ID != known.ID {
		t.Fatalf("token resolved to %+v, want user %s", resolved, known.ID.Hex())
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	known := &lb.User{ID: primitive.NewObjectID(), Username: "elaine", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "elaine", password: "nope"},
		{name: "unknown user", username: "kramer", password: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockUserStore{
				FindByUsernameFn: func(username string) (*lb.User, error) {
					if username == known.Username {
						return known, nil
					}
					return nil, nil
				},
			}
			svc := NewAuthService(store, testAuthConfig())

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if !apperr.IsCode(err, apperr.CodeUnauthenticated) {
				t.Fatalf("expected UNAUTHENTICATED, got %v", err)
			}
			if token != "" {
				t.Fatal("no token may be issued on failed login")
			}
		})
	}
}

func TestAuthService_ResolveUser_InvalidToken(t *testing.T) {
	store := &mockUserStore{
		FindByIDFn: func(primitive.ObjectID) (*lb.User, error) { return nil, nil },
	}
	svc := NewAuthService(store, testAuthConfig())

	for _, token := range []string{"garbage", "", "a.b.c"} {
		if _, err := svc.ResolveUser(context.Background(), token); !apperr.IsCode(err, apperr.CodeUnauthenticated) {
			t.Fatalf("token %q: expected UNAUTHENTICATED, got %v", token, err)
		}
	}
}

func TestAuthService_ResolveUser_DeletedUserIsAnonymous(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	known := &lb.User{ID: primitive.NewObjectID(), Username: "elaine", PasswordHash: string(hash)}

	store := &mockUserStore{
		FindByUsernameFn: func(string) (*lb.User, error) { return known, nil },
		FindByIDFn:       func(primitive.ObjectID) (*lb.User, error) { return nil, nil },
	}
	svc := NewAuthService(store, testAuthConfig())

	token, err := svc.Login(context.Background(), "elaine", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	user, err := svc.ResolveUser(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if user != nil {
		t.Fatalf("deleted user must resolve to anonymous, got %+v", user)
	}
}

func TestAuthService_ResolveUser_RejectsUnexpectedSigningMethod(t *testing.T) {
	// alg=none token with an empty signature
	const noneToken = "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VybmFtZSI6ImVsYWluZSJ9."

	store := &mockUserStore{
		FindByIDFn: func(primitive.ObjectID) (*lb.User, error) { return nil, nil },
	}
	svc := NewAuthService(store, testAuthConfig())

	if _, err := svc.ResolveUser(context.Background(), noneToken); !apperr.IsCode(err, apperr.CodeUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED for alg=none token, got %v", err)
	}
}

package service

import (
	"context"
	"fmt"
	lb "library_backend"
	"time"

	"library_backend/internal/apperr"
	"library_backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// AuthService issues and verifies session tokens and provisions users.
type AuthService struct {
	users      repository.UserStore
	signingKey []byte
	initialPwd string
	tokenTTL   time.Duration
}

func NewAuthService(users repository.UserStore, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		users:      users,
		signingKey: []byte(cfg.SigningKey),
		initialPwd: cfg.InitialPassword,
		tokenTTL:   ttl,
	}
}

var _ Authorization = (*AuthService)(nil)

// Claims defines the JWT payload: the username and user id the token was
// issued for.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	UserID   string `json:"id"`
}

// CreateUser stores a new user with a salted hash of the configured initial
// password. A store constraint violation (duplicate username) surfaces as a
// validation error with the offending username attached.
func (s *AuthService) CreateUser(ctx context.Context, username, favoriteGenre string) (*lb.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.initialPwd), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, lb.User{
		Username:      username,
		FavoriteGenre: favoriteGenre,
		PasswordHash:  string(hash),
	})
	if err != nil {
		return nil, apperr.ValidationWithInput("creating the user failed", username)
	}
	return user, nil
}

// Login verifies the credentials and returns a signed session token. A
// missing user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("login lookup: %w", err)
	}
	if user == nil {
		return "", apperr.Authentication("wrong credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Authentication("wrong credentials")
	}
	return s.issueToken(user)
}

// ResolveUser maps a bearer token back to its user. An invalid or expired
// token fails with an authentication error; a valid token whose user no
// longer exists resolves to (nil, nil), i.e. anonymous.
func (s *AuthService) ResolveUser(ctx context.Context, accessToken string) (*lb.User, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, apperr.Authentication("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Authentication("invalid or expired token")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperr.Authentication("invalid or expired token")
	}
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) issueToken(user *lb.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: user.Username,
		UserID:   user.ID.Hex(),
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

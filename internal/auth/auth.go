// Package auth implements password hashing and JWT session tokens for the
// portal API.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/pbkdf2"

	"github.com/teachpad/learning-assist/internal/store"
	"github.com/teachpad/learning-assist/pkg/clock"
)

const (
	pbkdf2Iterations = 100000
	saltLength       = 16
	keyLength        = 32

	tokenLifetime = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// HashPassword derives a PBKDF2-HMAC-SHA256 hash with a fresh random salt.
// Both values are base64-encoded for storage.
func HashPassword(password string) (hash string, salt string, err error) {
	rawSalt := make([]byte, saltLength)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("unable to generate salt: %w", err)
	}
	salt = base64.StdEncoding.EncodeToString(rawSalt)
	return hashWithSalt(password, salt), salt, nil
}

// VerifyPassword compares in constant time.
func VerifyPassword(password, storedHash, salt string) bool {
	computed := hashWithSalt(password, salt)
	return hmac.Equal([]byte(computed), []byte(storedHash))
}

func hashWithSalt(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, keyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// Claims carried by session tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service registers users, checks credentials and mints HS256 tokens.
type Service struct {
	secret []byte
	store  *store.Store
}

func NewService(secret string, st *store.Store) *Service {
	return &Service{secret: []byte(secret), store: st}
}

func (s *Service) Register(ctx context.Context, email, password, name, role string) (*store.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, salt, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = "teacher"
	}
	user := &store.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		Salt:         salt,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and returns a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *store.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !VerifyPassword(password, user.PasswordHash, user.Salt) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) GenerateToken(user *store.User) (string, error) {
	now := clock.Now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken parses and validates a session token.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(clock.Now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

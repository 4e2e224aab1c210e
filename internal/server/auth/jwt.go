// Package auth holds the server's password hashing and token signing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload: the registered claims (sub, iat, exp, jti)
// plus the user's profile fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Signer issues and verifies HS256 tokens with a shared secret.
type Signer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewSigner(secret []byte, validity time.Duration) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty signing secret")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %s", validity)
	}
	return &Signer{secret: secret, validity: validity, now: time.Now}, nil
}

// Sign issues a token for p. Each token gets a random id so two tokens for
// the same profile never collide, even within one second.
func (s *Signer) Sign(p models.Profile) (string, error) {
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
			ID:        uuid.NewString(),
		},
		UserID: p.ID,
		Name:   p.Name,
		Email:  p.Email,
	})

	return token.SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry and returns only the
// profile fields. Every failure matches common.ErrInvalidToken; expired
// tokens also match common.ErrTokenExpired.
func (s *Signer) Verify(tokenString string) (models.Profile, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Profile{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return models.Profile{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.Profile{}, common.ErrInvalidToken
	}

	return models.Profile{ID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}

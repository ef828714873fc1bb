// Package auth is the identity context: it turns credentials into an
// Identity the rest of the core consumes, and hashes passwords. The core
// never inspects token internals outside this package.
package auth

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"docvault/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the resolved actor of a request.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Verifier resolves an opaque credential into an Identity.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// TokenService issues and verifies HS256 JWTs carrying user id and role.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwtlib.RegisteredClaims
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (s *TokenService) Issue(userID, role string) (string, error) {
	now := time.Now()
	c := claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token and returns the embedded identity.
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || c.UserID == "" || c.Role == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: c.UserID, Role: c.Role}, nil
}

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"Tether/internal/core/actor"
	"Tether/internal/core/users"
)

// ErrInvalidToken is returned when a token is malformed, expired or badly signed
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims of an access token
type Claims struct {
	Role users.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer issues and verifies HS256 access tokens
type TokenIssuer struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer signing with secret; tokens expire after ttl
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token for user
func (i *TokenIssuer) Issue(user *users.User) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses a token and returns the actor it was issued for
func (i *TokenIssuer) Verify(tokenString string) (actor.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return actor.Actor{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return actor.Actor{
		UserID: userID,
		Admin:  claims.Role == users.RoleAdmin,
	}, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/logging"
)

// DefaultTokenTTL applies when no lifetime is configured.
const DefaultTokenTTL = 24 * time.Hour

// TokenIssuer signs and validates HS256 bearer tokens. Tokens are stateless: expiry is
// their only lifecycle bound.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. An empty secret is rejected.
func NewTokenIssuer(secret string, ttl time.Duration, issuer string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, apperror.NewConfigError("token signing secret is required", nil)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

// TTL is the lifetime of issued tokens.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue signs a token for id.
func (t *TokenIssuer) Issue(_ context.Context, id Identity) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", apperror.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// Verify validates the signature, algorithm, issuer and expiry of token.
// Every failure returns ErrUnauthorized; the reason is only logged.
func (t *TokenIssuer) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err == nil && !parsed.Valid {
		err = errors.New("token is not valid")
	}
	if err == nil && claims.UserID <= 0 {
		err = fmt.Errorf("invalid userId claim %d", claims.UserID)
	}
	if err != nil {
		logging.FromContext(ctx).Debug("bearer token rejected", logging.Fields{"reason": err.Error()})
		return nil, ErrUnauthorized
	}
	return claims, nil
}

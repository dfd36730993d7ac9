// Package auth verifies session tokens issued by the row store's auth
// service and builds the provider login redirect.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pvn-digital/initiative-catalog/errs"
)

// User is the authenticated caller.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Claims carries the fields read from an access token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 access tokens signed with the shared secret.
type Verifier struct {
	secret   []byte
	audience string
	leeway   time.Duration
}

type VerifierOption func(*Verifier)

// WithAudience rejects tokens not issued for audience.
func WithAudience(audience string) VerifierOption {
	return func(v *Verifier) { v.audience = audience }
}

func WithLeeway(leeway time.Duration) VerifierOption {
	return func(v *Verifier) { v.leeway = leeway }
}

func NewVerifier(secret string, opts ...VerifierOption) *Verifier {
	v := &Verifier{secret: []byte(secret), leeway: 30 * time.Second}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify parses a raw bearer token. Expired tokens map to
// errs.ErrExpiredToken, anything else unusable to errs.ErrInvalidToken.
func (v *Verifier) Verify(raw string) (User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return User{}, errs.NewMissingTokenError()
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return User{}, errs.NewExpiredTokenError()
	case err != nil:
		return User{}, errs.NewInvalidTokenError(err)
	}

	if claims.Subject == "" || claims.Email == "" {
		return User{}, errs.NewInvalidTokenError(errors.New("token has no subject or email"))
	}
	return User{ID: claims.Subject, Email: claims.Email}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

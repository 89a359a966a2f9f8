// Package auth verifies externally-issued identity tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// expiry, wrong issuer or audience, malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified subject of a request. The Subject is the
// identity-provider id and doubles as the local User id.
type Identity struct {
	Subject string
	Email   string
}

// TokenVerifier checks a bearer token and returns the identity it
// asserts.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Config holds verification settings for HMAC-signed tokens.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
}

// HMACVerifier verifies HS256-signed tokens against a shared secret.
type HMACVerifier struct {
	cfg Config
}

// NewHMACVerifier validates the config and returns a verifier.
func NewHMACVerifier(cfg Config) (*HMACVerifier, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("auth: secret is required")
	}
	return &HMACVerifier{cfg: cfg}, nil
}

// Verify parses and validates the token, returning its identity.
func (v *HMACVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(v.cfg.Secret), nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)

	return &Identity{Subject: sub, Email: email}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):]), true
	}
	return "", false
}

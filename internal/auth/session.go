// Package auth identifies the viewer of a page from a signed session token.
// Pages are public: a missing or invalid token only means the viewer is anonymous.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken        = errors.New("no session token")
	ErrInvalidToken   = errors.New("invalid session token")
	ErrSessionsOff    = errors.New("sessions are disabled")
	ErrMissingSubject = errors.New("session token has no user name")
)

// Claims is the session token payload. Name is the viewer's login name.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 session tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier returns a verifier for secret. An empty secret disables sessions.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a signing secret is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// Username returns the login name carried by token.
func (v *Verifier) Username(token string) (string, error) {
	if !v.Enabled() {
		return "", ErrSessionsOff
	}
	if token == "" {
		return "", ErrNoToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Name == "" {
		return "", ErrMissingSubject
	}
	return claims.Name, nil
}

// Issue signs a token for name valid for ttl. The sign-in service owns issuance in
// production; this is used by tests and local tooling.
func (v *Verifier) Issue(name string, ttl time.Duration) (string, error) {
	if !v.Enabled() {
		return "", ErrSessionsOff
	}
	now := time.Now()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

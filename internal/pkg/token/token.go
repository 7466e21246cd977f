// Package token issues and verifies the signed session tokens handed out at
// login. A token carries only the user id and an expiry; roles are always
// read from storage.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session lifetime used when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// InvalidTokenError is returned by Verify for every rejection: no token,
// malformed input, wrong signature or expiry.
type InvalidTokenError struct {
	Reason string
	Err    error
}

func (e *InvalidTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid token: %s: %v", e.Reason, e.Err)
	}
	return "invalid token: " + e.Reason
}

func (e *InvalidTokenError) Unwrap() error { return e.Err }

// Claims is the JWT payload. The user id travels as "_id".
type Claims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens with a secret fixed at construction.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Manager)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(secret string, ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue returns a signed token for userID that expires after the configured TTL.
func (m *Manager) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("issue token: empty user id")
	}
	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
func (m *Manager) Verify(raw string) (string, error) {
	if raw == "" {
		return "", &InvalidTokenError{Reason: "no token supplied"}
	}

	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", &InvalidTokenError{Reason: "expired", Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", &InvalidTokenError{Reason: "bad signature", Err: err}
	case err != nil:
		return "", &InvalidTokenError{Reason: "malformed", Err: err}
	case !tkn.Valid:
		return "", &InvalidTokenError{Reason: "not valid"}
	case claims.UserID == "":
		return "", &InvalidTokenError{Reason: "missing user id"}
	}
	return claims.UserID, nil
}

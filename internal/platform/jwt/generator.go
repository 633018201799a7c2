// Package jwtmw issues and verifies signed identity tokens and provides the
// gin middleware that guards private routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid is returned for malformed tokens, bad signatures,
	// unexpected signing methods and tokens without a user claim.
	ErrTokenInvalid = errors.New("token is not valid")

	// ErrTokenExpired is returned once a correctly signed token is past its exp claim.
	ErrTokenExpired = errors.New("token has expired")
)

// DefaultExpiration is the token lifetime used when none is configured.
const DefaultExpiration = 360000 * time.Second

// UserClaim is the identity payload embedded in every token.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the full claim set: {"user":{"id":...}} plus the registered claims.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 tokens with a server-held secret.
// Tokens are stateless: expiry is the only lifecycle bound.
type Service struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for iat/exp and for verification.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a token service. A non-positive expiration falls back to DefaultExpiration.
func NewService(secret string, expiration time.Duration, opts ...Option) *Service {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	s := &Service{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a signed token for userID that expires after the configured duration.
func (s *Service) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := s.now()
	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
func (s *Service) Verify(tokenStr string) (string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; this also rejects "none".
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}

	userID := claims.User.ID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", fmt.Errorf("%w: missing user claim", ErrTokenInvalid)
	}
	return userID, nil
}

// ABOUTME: JWT token issuance and verification for authenticating API requests
// ABOUTME: Uses HS256 signing with configurable secret, issuer, and lifetime

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	// ErrInvalidToken covers every verification failure: bad signature,
	// expiry, wrong issuer, malformed string, missing subject. Callers must
	// not surface more detail than this to the network.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken wraps ErrInvalidToken so errors.Is(err, ErrInvalidToken)
	// holds; it exists only so the expiry case can be logged distinctly.
	ErrExpiredToken = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// minSecretLen is the minimum signing secret length in bytes (256 bits).
const minSecretLen = 32

// TokenCodec issues and verifies HS256-signed identity tokens.
// The zero value is not usable; construct with NewTokenCodec.
type TokenCodec struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenCodec creates a codec signing with the given secret.
// The secret must be at least 256 bits.
func NewTokenCodec(secret []byte, issuer string, lifetime time.Duration) (*TokenCodec, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("token secret must be at least %d bytes, got %d", minSecretLen, len(secret))
	}
	if issuer == "" {
		return nil, errors.New("token issuer is required")
	}
	if lifetime <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}
	return &TokenCodec{
		secret:   secret,
		issuer:   issuer,
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// WithClock replaces the codec's time source. Issue and ParseSubject both
// read the clock once per call, so tests can step time deterministically.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	c.now = now
	return c
}

// Lifetime returns the configured token lifetime.
func (c *TokenCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue creates a signed token for the given subject handle.
// Timestamps are truncated to whole seconds; exp is always iat + lifetime.
func (c *TokenCodec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}

	now := c.now().Truncate(time.Second)
	claims := jwt.MapClaims{
		"sub": subject,
		"iss": c.issuer,
		"iat": now.Unix(),
		"exp": now.Add(c.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseSubject verifies the token and extracts the subject handle.
// Signature and expiry failures both come back as ErrInvalidToken; only the
// expiry case additionally matches ErrExpiredToken for internal logging.
func (c *TokenCodec) ParseSubject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	return sub, nil
}

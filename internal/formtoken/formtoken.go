// Package formtoken issues and checks the anti-forgery tokens embedded in
// POST forms. A token is an HS256 JWT whose subject is a nonce that the
// browser also holds in a cookie; a form is accepted only when both agree.
package formtoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// TokenExpiry is how long a rendered form stays submittable.
const TokenExpiry = 2 * time.Hour

const keyInfo = "gamebase form tokens"

// ErrMismatch is returned when a token does not belong to the nonce.
var ErrMismatch = errors.New("form token does not match")

// Signer issues and verifies form tokens.
type Signer struct {
	key []byte
	ttl time.Duration
}

// NewSigner derives the signing key from the instance secret.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty instance secret")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("deriving form token key: %w", err)
	}
	return &Signer{key: key, ttl: TokenExpiry}, nil
}

// NewNonce returns a random value to bind tokens to.
func NewNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Issue creates a token bound to nonce.
func (s *Signer) Issue(nonce string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   nonce,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("signing form token: %w", err)
	}
	return signed, nil
}

// Verify checks that token is valid, unexpired and bound to nonce.
func (s *Signer) Verify(token, nonce string) error {
	if token == "" || nonce == "" {
		return ErrMismatch
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("parsing form token: %w", err)
	}

	if claims.Subject != nonce {
		return ErrMismatch
	}
	return nil
}

package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// minKeySize is the smallest HMAC key accepted (256 bits).
const minKeySize = 32

var ErrWeakKey = errors.New("jwtx: HMAC key must be at least 32 bytes")

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs session tokens with a shared HMAC key.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 returns a signer for key. The key is derived from the
// vault key and never leaves the process, so a symmetric scheme suffices.
func NewSignerHS256(key []byte) (*HS256Signer, error) {
	if len(key) < minKeySize {
		return nil, ErrWeakKey
	}
	return &HS256Signer{key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

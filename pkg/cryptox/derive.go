package cryptox

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var ErrEmptySecret = errors.New("cryptox: empty secret")

// Labels for keys derived from the vault key. Each purpose gets an
// independent key so the field cipher key never signs anything.
const (
	PurposeSession = "credvault session signing v1"
	PurposePepper  = "credvault password pepper v1"
)

// DeriveKey expands secret into size bytes bound to purpose using
// HKDF-SHA256.
func DeriveKey(secret []byte, purpose string, size int) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	out := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(purpose)), out); err != nil {
		return nil, fmt.Errorf("cryptox: derive %q: %w", purpose, err)
	}
	return out, nil
}

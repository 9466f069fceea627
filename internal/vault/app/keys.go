package app

import (
	"fmt"

	"github.com/aussiebroadwan/credvault/pkg/cryptox"
	"github.com/aussiebroadwan/credvault/pkg/fieldcrypt"
	"github.com/aussiebroadwan/credvault/pkg/jwtx"
)

const (
	sessionKeySize = 32
	pepperSize     = 32
)

// Keys holds everything derived from VAULT_ENCRYPTION_KEY.
type Keys struct {
	Cipher   *fieldcrypt.Cipher
	Signer   *jwtx.HS256Signer
	Verifier *jwtx.HS256Verifier
	Pepper   []byte
}

// InitKeys builds the field cipher and derives independent session and
// pepper keys from the single vault key. Rotating the vault key therefore
// also invalidates every session and password hash.
func InitKeys(cfg Config) (*Keys, error) {
	secret := []byte(cfg.EncryptionKey)

	c, err := fieldcrypt.New(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize field cipher: %w", err)
	}

	sessionKey, err := cryptox.DeriveKey(secret, cryptox.PurposeSession, sessionKeySize)
	if err != nil {
		return nil, err
	}
	signer, err := jwtx.NewSignerHS256(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256(sessionKey, cfg.Issuer, []string{cfg.Issuer})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session verifier: %w", err)
	}

	pepper, err := cryptox.DeriveKey(secret, cryptox.PurposePepper, pepperSize)
	if err != nil {
		return nil, err
	}

	return &Keys{Cipher: c, Signer: signer, Verifier: verifier, Pepper: pepper}, nil
}

package fieldcrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// FormatTag is prepended to every plaintext before it is sealed. Payloads
// without it were written before versioning and are returned as-is.
const FormatTag = "v1:"

// envelopePrefix marks ciphertext produced by Encrypt. The standard base64
// alphabet never contains '.', so the prefix cannot collide with legacy
// envelopes.
const envelopePrefix = "g1."

const (
	kindByteText   byte = 't'
	kindByteObject byte = 'j'
)

var (
	// ErrMissingKey is returned by New when no key material is configured.
	ErrMissingKey = errors.New("fieldcrypt: missing encryption key")

	// ErrCipher reports an encrypt-time failure. Nothing should be persisted
	// when it is returned.
	ErrCipher = errors.New("fieldcrypt: encryption failed")

	errNotEnvelope = errors.New("fieldcrypt: not an envelope")
	errEmpty       = errors.New("fieldcrypt: empty plaintext")
	errInvalidUTF8 = errors.New("fieldcrypt: plaintext is not valid utf-8")
	errAuth        = errors.New("fieldcrypt: message authentication failed")
)

// Cipher encrypts and decrypts individual field values with a single shared
// key. It holds no mutable state and is safe for concurrent use.
type Cipher struct {
	passphrase []byte
	aead       cipher.AEAD
	rand       io.Reader
}

// New derives an AES-256-GCM key from keyMaterial (SHA-256) and returns a
// Cipher. The raw material is also kept as the passphrase for reading
// legacy OpenSSL-style envelopes.
func New(keyMaterial []byte) (*Cipher, error) {
	if len(bytes.TrimSpace(keyMaterial)) == 0 {
		return nil, ErrMissingKey
	}

	sum := sha256.Sum256(keyMaterial)

	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Cipher{
		passphrase: bytes.Clone(keyMaterial),
		aead:       gcm,
		rand:       rand.Reader,
	}, nil
}

// Encrypt seals v and returns an opaque text envelope. A zero Value (empty
// text or nil object) is passed through as "" so that "not set" stays
// distinguishable from an encrypted value. Every call uses a fresh nonce.
func (c *Cipher) Encrypt(v Value) (string, error) {
	if v.IsZero() {
		return "", nil
	}

	payload, err := v.payload()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCipher, err)
	}

	kind := kindByteText
	if v.Kind == KindObject {
		kind = kindByteObject
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %w", ErrCipher, err)
	}

	// [kind][nonce][ciphertext+tag], kind is bound as additional data
	buf := make([]byte, 0, 1+len(nonce)+len(FormatTag)+len(payload)+c.aead.Overhead())
	buf = append(buf, kind)
	buf = append(buf, nonce...)
	buf = c.aead.Seal(buf, nonce, []byte(FormatTag+payload), []byte{kind})

	return envelopePrefix + base64.StdEncoding.EncodeToString(buf), nil
}

// EncryptString is Encrypt(Text(s)).
func (c *Cipher) EncryptString(s string) (string, error) {
	return c.Encrypt(Text(s))
}

// Open decrypts s and reports how the value was recovered.
func (c *Cipher) Open(s string) (res Result) {
	if s == "" {
		return passThrough(s, nil)
	}

	defer func() {
		if r := recover(); r != nil {
			res = failed(fmt.Errorf("fieldcrypt: internal failure: %v", r))
		}
	}()

	switch {
	case strings.HasPrefix(s, envelopePrefix):
		return c.openEnvelope(s)
	case strings.HasPrefix(s, legacyPrefix):
		return c.openLegacy(s)
	default:
		return passThrough(s, errNotEnvelope)
	}
}

// Decrypt returns the plaintext for s. Values that were never encrypted come
// back unchanged; values that could not be recovered come back as empty text.
func (c *Cipher) Decrypt(s string) Value {
	res := c.Open(s)
	if res.Outcome == Failed {
		return Text("")
	}
	return res.Value
}

// DecryptString is Decrypt(s).String().
func (c *Cipher) DecryptString(s string) string {
	return c.Decrypt(s).String()
}

func (c *Cipher) openEnvelope(s string) Result {
	raw, err := base64.StdEncoding.DecodeString(s[len(envelopePrefix):])
	if err != nil {
		return passThrough(s, errNotEnvelope)
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < 1+nonceSize+c.aead.Overhead() {
		return passThrough(s, errNotEnvelope)
	}

	kind := raw[0]
	if kind != kindByteText && kind != kindByteObject {
		return passThrough(s, errNotEnvelope)
	}

	nonce, sealed := raw[1:1+nonceSize], raw[1+nonceSize:]
	plain, err := c.aead.Open(nil, nonce, sealed, []byte{kind})
	if err != nil {
		return failed(errAuth)
	}

	if len(plain) == 0 {
		return passThrough(s, errEmpty)
	}
	if !utf8.Valid(plain) {
		return passThrough(s, errInvalidUTF8)
	}

	text, tagged := strings.CutPrefix(string(plain), FormatTag)
	if kind == kindByteObject {
		return decrypted(objectOrText(text), tagged)
	}
	return decrypted(Text(text), tagged)
}

package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" // #nosec G501 - required by the OpenSSL EVP_BytesToKey format
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// legacyPrefix is base64("Salted__"), the header of OpenSSL passphrase
// envelopes (AES-256-CBC, EVP_BytesToKey with MD5, one iteration). Records
// written by the previous application use this format; they are read but
// never written.
const legacyPrefix = "U2FsdGVkX1"

const (
	legacySaltSize = 8
	legacyKeySize  = 32
)

var errBadPadding = errors.New("fieldcrypt: invalid padding")

func (c *Cipher) openLegacy(s string) Result {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return passThrough(s, errNotEnvelope)
	}

	header := len("Salted__") + legacySaltSize
	if len(raw) < header+aes.BlockSize || string(raw[:8]) != "Salted__" {
		return passThrough(s, errNotEnvelope)
	}

	body := raw[header:]
	if len(body)%aes.BlockSize != 0 {
		return passThrough(s, errNotEnvelope)
	}

	key, iv := evpBytesToKey(c.passphrase, raw[8:header], legacyKeySize, aes.BlockSize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return failed(err)
	}

	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	plain, err = pkcs7Unpad(plain)
	if err != nil {
		return failed(err)
	}
	if len(plain) == 0 {
		return passThrough(s, errEmpty)
	}
	if !utf8.Valid(plain) {
		return failed(errInvalidUTF8)
	}

	text, tagged := strings.CutPrefix(string(plain), FormatTag)
	return decrypted(objectOrText(text), tagged)
}

// evpBytesToKey implements OpenSSL's EVP_BytesToKey with MD5 and a single
// iteration.
func evpBytesToKey(passphrase, salt []byte, keyLen, ivLen int) ([]byte, []byte) {
	var (
		derived []byte
		prev    []byte
	)
	for len(derived) < keyLen+ivLen {
		h := md5.New() // #nosec G401
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}

func pkcs7Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 || len(b)%aes.BlockSize != 0 {
		return nil, errBadPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize {
		return nil, errBadPadding
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errBadPadding
		}
	}
	return b[:len(b)-n], nil
}

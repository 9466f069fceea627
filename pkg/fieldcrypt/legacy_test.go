package fieldcrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const legacyKey = "eT9QYgXmbJ4QFHss9fDkUm3Zd8VNyLC2"

// sealLegacy produces an OpenSSL "Salted__" envelope the way the previous
// application did (passphrase mode, AES-256-CBC, PKCS#7).
func sealLegacy(t *testing.T, passphrase, plaintext string) string {
	t.Helper()

	salt := []byte("12345678")
	key, iv := evpBytesToKey([]byte(passphrase), salt, legacyKeySize, aes.BlockSize)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	pad := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append([]byte(plaintext), bytes.Repeat([]byte{byte(pad)}, pad)...)

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	raw := append(append([]byte("Salted__"), salt...), out...)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestEvpBytesToKeyKnownVector(t *testing.T) {
	// openssl enc -aes-256-cbc -md md5 -k password -S 0000000000000000 -P
	key, iv := evpBytesToKey([]byte("password"), make([]byte, 8), 32, 16)
	require.Equal(t, "997e59f2fb2e4aa92cd02faa13646986767ae0a298d88132ae55806c2dfad95c", hex.EncodeToString(key))
	require.Equal(t, "fc15da9b32fd13afe42e45502d8e3db8", hex.EncodeToString(iv))
}

func TestOpenLegacyOpenSSLEnvelope(t *testing.T) {
	// printf 'v1:hunter2' | openssl enc -aes-256-cbc -md md5 -k <legacyKey> -S 3132333435363738
	const envelope = "U2FsdGVkX18xMjM0NTY3OIP3TTO9n2AsnatyPIrgnlE="

	c, err := New([]byte(legacyKey))
	require.NoError(t, err)
	require.Equal(t, envelope, sealLegacy(t, legacyKey, "v1:hunter2"))
	require.Equal(t, "hunter2", c.DecryptString(envelope))
}

func TestOpenLegacyTagged(t *testing.T) {
	c, err := New([]byte(legacyKey))
	require.NoError(t, err)

	res := c.Open(sealLegacy(t, legacyKey, "v1:hunter2"))
	require.Equal(t, Decrypted, res.Outcome)
	require.True(t, res.Tagged)
	require.Equal(t, "hunter2", res.Value.String())
}

func TestOpenLegacyUnversioned(t *testing.T) {
	c, err := New([]byte(legacyKey))
	require.NoError(t, err)

	res := c.Open(sealLegacy(t, legacyKey, "pre-versioning"))
	require.Equal(t, Decrypted, res.Outcome)
	require.False(t, res.Tagged)
	require.Equal(t, "pre-versioning", res.Value.String())
}

func TestOpenLegacyObjectSniff(t *testing.T) {
	c, err := New([]byte(legacyKey))
	require.NoError(t, err)

	res := c.Open(sealLegacy(t, legacyKey, `v1:{"userId":1,"username":"admin"}`))
	require.Equal(t, Decrypted, res.Outcome)
	require.Equal(t, KindObject, res.Value.Kind)

	var out struct {
		UserID   int    `json:"userId"`
		Username string `json:"username"`
	}
	require.NoError(t, res.Value.Decode(&out))
	require.Equal(t, "admin", out.Username)

	// Scalars that happen to be valid JSON stay text
	res = c.Open(sealLegacy(t, legacyKey, "v1:12345"))
	require.Equal(t, KindText, res.Value.Kind)
	require.Equal(t, "12345", res.Value.String())
}

func TestOpenLegacyWrongKey(t *testing.T) {
	c, err := New([]byte("not-the-legacy-key"))
	require.NoError(t, err)

	// Wrong passphrase leaves garbage padding behind
	res := c.Open(sealLegacy(t, legacyKey, "v1:hunter2"))
	require.Equal(t, Failed, res.Outcome)
	require.ErrorIs(t, res.Err, errBadPadding)
	require.Equal(t, "", c.DecryptString(sealLegacy(t, legacyKey, "v1:hunter2")))
}

func TestOpenLegacyMalformedUTF8(t *testing.T) {
	c, err := New([]byte(legacyKey))
	require.NoError(t, err)

	sealed := sealLegacy(t, legacyKey, "v1:\xff\xfe")
	res := c.Open(sealed)
	require.Equal(t, Failed, res.Outcome)
	require.ErrorIs(t, res.Err, errInvalidUTF8)
	require.Equal(t, "", c.DecryptString(sealed))
}

func TestPKCS7Unpad(t *testing.T) {
	_, err := pkcs7Unpad(nil)
	require.ErrorIs(t, err, errBadPadding)

	block := bytes.Repeat([]byte{0x10}, aes.BlockSize)
	out, err := pkcs7Unpad(block)
	require.NoError(t, err)
	require.Empty(t, out)

	bad := append(bytes.Repeat([]byte{'a'}, 15), 0x00)
	_, err = pkcs7Unpad(bad)
	require.ErrorIs(t, err, errBadPadding)
}

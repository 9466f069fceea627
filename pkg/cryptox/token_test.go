package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name string
		size int
		len  int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.len)

			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}

	_, err := GenerateToken(0)
	require.Error(t, err)
	_, err = GenerateToken(-1)
	require.Error(t, err)
}

func TestDeriveKey(t *testing.T) {
	secret := []byte("vault-key")

	a, err := DeriveKey(secret, PurposeSession, 32)
	require.NoError(t, err)
	require.Len(t, a, 32)

	again, err := DeriveKey(secret, PurposeSession, 32)
	require.NoError(t, err)
	require.Equal(t, a, again, "derivation is deterministic")

	b, err := DeriveKey(secret, PurposePepper, 32)
	require.NoError(t, err)
	require.NotEqual(t, hex.EncodeToString(a), hex.EncodeToString(b), "purposes must not collide")

	_, err = DeriveKey(nil, PurposeSession, 32)
	require.ErrorIs(t, err, ErrEmptySecret)
}

package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/credvault/pkg/cryptox"
	"github.com/aussiebroadwan/credvault/pkg/fieldcrypt"
	"github.com/aussiebroadwan/credvault/pkg/jwtx"
	"github.com/aussiebroadwan/credvault/pkg/otpx"
	"github.com/stretchr/testify/require"
)

const (
	testVaultKey = "correct-horse-battery-staple-0123456789"
	testSecret   = "JBSWY3DPEHPK3PXP"
)

// testNow sits 15 seconds into a TOTP window.
var testNow = time.Date(2024, 3, 5, 10, 0, 15, 0, time.UTC)

type fixture struct {
	store    *sqlite.Store
	cipher   *fieldcrypt.Cipher
	otp      *otpx.Engine
	accounts *AccountService
	groups   *GroupService
	auth     *AuthService
	mfa      *MFAService
	verifier *jwtx.HS256Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	c, err := fieldcrypt.New([]byte(testVaultKey))
	require.NoError(t, err)

	engine := otpx.New()
	engine.Now = func() time.Time { return testNow }

	key, err := cryptox.DeriveKey([]byte(testVaultKey), cryptox.PurposeSession, 32)
	require.NoError(t, err)
	signer, err := jwtx.NewSignerHS256(key)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(key, "credvault", []string{"credvault"})
	require.NoError(t, err)
	verifier.Now = func() time.Time { return testNow }

	codec := &AccountCodec{Cipher: c, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	return &fixture{
		store:  st,
		cipher: c,
		otp:    engine,
		accounts: &AccountService{
			Store:    st,
			Codec:    codec,
			OTP:      engine,
			Exporter: Exporter{Location: time.UTC},
		},
		groups: &GroupService{Store: st},
		auth: &AuthService{
			Store:    st,
			Cipher:   c,
			Hasher:   cryptox.Hasher{Pepper: []byte("pepper")},
			OTP:      engine,
			Signer:   signer,
			Issuer:   "credvault",
			Audience: []string{"credvault"},
			TTL:      time.Hour,
			Now:      func() time.Time { return testNow },
		},
		mfa: &MFAService{
			Store:  st,
			Cipher: c,
			OTP:    engine,
			Issuer: "credvault",
		},
		verifier: verifier,
	}
}

func strPtr(s string) *string { return &s }

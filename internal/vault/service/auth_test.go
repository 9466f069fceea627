package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/pkg/cryptox"
	"github.com/aussiebroadwan/credvault/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.auth.CreateUser(ctx, " ", "pw", false)
	require.ErrorIs(t, err, ErrInvalidUser)

	u, enrol, err := f.auth.CreateUser(ctx, "admin", "s3cret", true)
	require.NoError(t, err)
	require.NotNil(t, enrol)
	require.NotEmpty(t, enrol.Secret)
	require.Contains(t, enrol.OTPAuthURL, "issuer=credvault")
	require.True(t, cryptox.IsPasswordHash(u.Password))

	stored, err := f.store.Users().GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, stored.TwoFAEnabled)
	require.NotEqual(t, enrol.Secret, *stored.TwoFASecret)
	require.Equal(t, enrol.Secret, f.cipher.DecryptString(*stored.TwoFASecret))

	_, _, err = f.auth.CreateUser(ctx, "admin", "other", false)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.auth.CreateUser(ctx, "plain", "hunter2", false)
	require.NoError(t, err)
	_, enrol, err := f.auth.CreateUser(ctx, "admin", "s3cret", true)
	require.NoError(t, err)

	t.Run("password only", func(t *testing.T) {
		sess, err := f.auth.Login(ctx, "plain", "hunter2", "")
		require.NoError(t, err)
		require.Equal(t, testNow.Add(f.auth.TTL), sess.ExpiresAt)

		claims, err := f.verifier.Verify(sess.Token)
		require.NoError(t, err)
		require.Equal(t, sess.UserID, claims.Subject)
		require.Equal(t, "plain", claims.Username)
		require.True(t, claims.HasAMR(jwtx.AMRPassword))
		require.False(t, claims.HasAMR(jwtx.AMROTP))

		u, err := f.store.Users().GetUserByID(ctx, sess.UserID)
		require.NoError(t, err)
		require.NotNil(t, u.LastLogin)
		require.True(t, testNow.Equal(*u.LastLogin))
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		_, err := f.auth.Login(ctx, "plain", "nope", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = f.auth.Login(ctx, "ghost", "hunter2", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("second factor", func(t *testing.T) {
		_, err := f.auth.Login(ctx, "admin", "s3cret", "")
		require.ErrorIs(t, err, ErrTOTPRequired)

		_, err = f.auth.Login(ctx, "admin", "s3cret", "000000")
		require.ErrorIs(t, err, ErrInvalidTOTPCode)

		// A wrong password is reported before the code is asked for
		_, err = f.auth.Login(ctx, "admin", "wrong", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		sess, err := f.auth.Login(ctx, "admin", "s3cret", f.otp.GenerateCode(enrol.Secret))
		require.NoError(t, err)

		claims, err := f.verifier.Verify(sess.Token)
		require.NoError(t, err)
		require.True(t, claims.HasAMR(jwtx.AMROTP))
	})
}

func TestLoginLegacyPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sealed, err := f.cipher.EncryptString("imported-pw")
	require.NoError(t, err)
	require.NoError(t, f.store.Users().CreateUser(ctx, domain.User{ID: "01HLEGACY", Username: "old", Password: sealed}))

	_, err = f.auth.Login(ctx, "old", "imported-pw", "")
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "old", "imported", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMFALifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, _, err := f.auth.CreateUser(ctx, "admin", "s3cret", false)
	require.NoError(t, err)

	_, err = f.mfa.Setup(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.ErrorIs(t, f.mfa.Verify(ctx, u.ID, "123456"), ErrMFANotEnrolled)

	enrol, err := f.mfa.Setup(ctx, u.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrol.Secret)
	require.Contains(t, enrol.QRCode, "data:image/png;base64,")

	// Pending secrets do not gate login yet
	_, err = f.auth.Login(ctx, "admin", "s3cret", "")
	require.NoError(t, err)

	require.ErrorIs(t, f.mfa.Verify(ctx, u.ID, "000000"), ErrInvalidTOTPCode)

	code := f.otp.GenerateCode(enrol.Secret)
	require.NoError(t, f.mfa.Verify(ctx, u.ID, code))
	require.ErrorIs(t, f.mfa.Verify(ctx, u.ID, code), ErrMFAAlreadyEnabled)

	_, err = f.mfa.Setup(ctx, u.ID)
	require.ErrorIs(t, err, ErrMFAAlreadyEnabled)

	_, err = f.auth.Login(ctx, "admin", "s3cret", "")
	require.ErrorIs(t, err, ErrTOTPRequired)

	require.ErrorIs(t, f.mfa.Disable(ctx, u.ID, "000000"), ErrInvalidTOTPCode)
	require.NoError(t, f.mfa.Disable(ctx, u.ID, code))
	require.ErrorIs(t, f.mfa.Disable(ctx, u.ID, code), ErrMFANotEnabled)

	_, err = f.auth.Login(ctx, "admin", "s3cret", "")
	require.NoError(t, err)
}

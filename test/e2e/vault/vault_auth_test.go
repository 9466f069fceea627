package vault_test

import (
	"errors"
	"testing"

	"github.com/aussiebroadwan/credvault/pkg/otpx"
	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginWithSecondFactor covers an operator created with 2FA from the
// command line.
func TestLoginWithSecondFactor(t *testing.T) {
	container, baseURL := setupVaultContainer(t)
	secret := createOperator(t, container, true)
	engine := otpx.New()

	client := vaultsdk.NewClient(baseURL)

	err := client.Login(t.Context(), adminUsername, "wrong", "")
	assertStatus(t, err, 401)

	err = client.Login(t.Context(), adminUsername, adminPassword, "")
	var apiErr *vaultsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.True(t, apiErr.Require2FA)

	err = client.Login(t.Context(), adminUsername, adminPassword, "000000")
	assertStatus(t, err, 401)

	require.NoError(t, client.Login(t.Context(), adminUsername, adminPassword, engine.GenerateCode(secret)))

	_, err = client.ListAccounts(t.Context())
	require.NoError(t, err)

	require.NoError(t, client.Logout(t.Context()))
	_, err = client.ListAccounts(t.Context())
	assertStatus(t, err, 401)
}

// TestEnrolSecondFactor walks setup, verify and disable for an operator
// that started without 2FA.
func TestEnrolSecondFactor(t *testing.T) {
	client := loggedInClient(t)
	engine := otpx.New()

	setup, err := client.SetupTOTP(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)
	require.Contains(t, setup.OTPAuthURL, "issuer=credvault-e2e")

	assertStatus(t, client.VerifyTOTP(t.Context(), "000000"), 400)
	require.NoError(t, client.VerifyTOTP(t.Context(), engine.GenerateCode(setup.Secret)))

	_, err = client.SetupTOTP(t.Context())
	assertStatus(t, err, 409)

	require.NoError(t, client.DisableTOTP(t.Context(), engine.GenerateCode(setup.Secret)))
}

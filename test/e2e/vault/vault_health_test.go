package vault_test

import (
	"testing"

	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

func TestLivezEndpoint(t *testing.T) {
	_, baseURL := setupVaultContainer(t)
	client := vaultsdk.NewClient(baseURL)

	health, err := client.Livez(t.Context())
	assertHealthy(t, health, err)
}

func TestReadyzEndpoint(t *testing.T) {
	_, baseURL := setupVaultContainer(t)
	client := vaultsdk.NewClient(baseURL)

	health, err := client.Readyz(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Cipher)
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	_, baseURL := setupVaultContainer(t)
	client := vaultsdk.NewClient(baseURL)

	_, err := client.ListAccounts(t.Context())
	assertStatus(t, err, 401)

	_, err = client.Export(t.Context(), "text")
	assertStatus(t, err, 401)
}

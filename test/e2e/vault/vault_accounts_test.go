package vault_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aussiebroadwan/credvault/pkg/otpx"
	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

const accountSecret = "JBSWY3DPEHPK3PXP"

func TestAccountLifecycle(t *testing.T) {
	client := loggedInClient(t)
	ctx := t.Context()

	group, err := client.CreateGroup(ctx, "Main")
	require.NoError(t, err)

	secret, email := accountSecret, "a@x.com"
	alice, err := client.CreateAccount(ctx, vaultsdk.AccountRequest{
		UserID:      "alice",
		Password:    "p1",
		Email:       &email,
		TwoFASecret: &secret,
		Tags:        "x,y",
		DOB:         "2000-01-02",
		GroupID:     &group.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "x, y", alice.Tags)
	require.Equal(t, "Main", alice.Group.Name)

	bob, err := client.CreateAccount(ctx, vaultsdk.AccountRequest{UserID: "bob", Password: "p2", Tags: "y"})
	require.NoError(t, err)

	t.Run("code matches a local engine", func(t *testing.T) {
		code, err := client.AccountCode(ctx, alice.ID)
		require.NoError(t, err)
		require.True(t, code.Valid)

		// The window may roll over between the two calls
		engine := otpx.New()
		require.True(t, engine.VerifyCode(accountSecret, code.Code))

		_, err = client.AccountCode(ctx, bob.ID)
		assertStatus(t, err, 404)
	})

	t.Run("reorder", func(t *testing.T) {
		accounts, err := client.ReorderAccounts(ctx, []int64{bob.ID, alice.ID})
		require.NoError(t, err)
		require.Equal(t, "bob", accounts[0].UserID)
	})

	t.Run("tags", func(t *testing.T) {
		tags, err := client.UniqueTags(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"x", "y"}, tags)

		candidates, err := client.TagCandidates(ctx, "y")
		require.NoError(t, err)
		require.Equal(t, 2, candidates.Count)

		res, err := client.ReplaceTag(ctx, "y", "z")
		require.NoError(t, err)
		require.Equal(t, 2, res.Updated)
	})

	t.Run("export", func(t *testing.T) {
		text, err := client.Export(ctx, "text")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(text)), "\n")
		require.Len(t, lines, 3)
		require.True(t, strings.HasPrefix(lines[2], "alice|p1|a@x.com||"+accountSecret+"|02/01/2000|Main|x, z|"), lines[2])

		raw, err := client.Export(ctx, "json")
		require.NoError(t, err)
		var accounts []vaultsdk.Account
		require.NoError(t, json.Unmarshal(raw, &accounts))
		require.Len(t, accounts, 2)
	})

	t.Run("group in use cannot be deleted", func(t *testing.T) {
		assertStatus(t, client.DeleteGroup(ctx, group.ID), 409)

		require.NoError(t, client.DeleteAccount(ctx, alice.ID))
		require.NoError(t, client.DeleteGroup(ctx, group.ID))
	})
}

package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/stretchr/testify/require"
)

func TestGroups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	list, err := f.groups.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
	require.NotNil(t, list)

	_, err = f.groups.Create(ctx, "   ")
	require.ErrorIs(t, err, ErrGroupNameMissing)

	main, err := f.groups.Create(ctx, "  Main ")
	require.NoError(t, err)
	require.Equal(t, "Main", main.Name)
	require.Equal(t, 0, main.Order)

	spare, err := f.groups.Create(ctx, "Spare")
	require.NoError(t, err)
	require.Equal(t, 1, spare.Order)

	_, err = f.groups.Create(ctx, "Main")
	require.ErrorIs(t, err, ErrGroupExists)

	t.Run("rename", func(t *testing.T) {
		g, err := f.groups.Rename(ctx, spare.ID, " Backup ")
		require.NoError(t, err)
		require.Equal(t, "Backup", g.Name)

		_, err = f.groups.Rename(ctx, spare.ID, "Main")
		require.ErrorIs(t, err, ErrGroupExists)

		_, err = f.groups.Rename(ctx, 999, "Other")
		require.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("delete refuses while accounts remain", func(t *testing.T) {
		a, err := f.accounts.Create(ctx, domain.Account{Identifier: "alice", Password: "p1", GroupID: &main.ID})
		require.NoError(t, err)

		list, err := f.groups.List(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, list[0].AccountCount)

		require.ErrorIs(t, f.groups.Delete(ctx, main.ID), ErrGroupNotEmpty)

		require.NoError(t, f.accounts.Delete(ctx, a.ID))
		require.NoError(t, f.groups.Delete(ctx, main.ID))
		require.ErrorIs(t, f.groups.Delete(ctx, main.ID), ErrGroupNotFound)
	})
}

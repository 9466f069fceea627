package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/stretchr/testify/require"
)

func seedTagged(t *testing.T, f *fixture) []domain.Account {
	t.Helper()
	ctx := context.Background()

	var out []domain.Account
	for _, a := range []domain.Account{
		{Identifier: "alice", Password: "p1", Tags: "work, shared"},
		{Identifier: "bob", Password: "p2", Tags: "personal"},
		{Identifier: "carol", Password: "p3", Tags: "shared,work-old"},
	} {
		created, err := f.accounts.Create(ctx, a)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func TestUniqueTags(t *testing.T) {
	f := newFixture(t)
	seedTagged(t, f)

	tags, err := f.accounts.UniqueTags(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"work", "shared", "personal", "work-old"}, tags)
}

func TestAccountsWithTag(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedTagged(t, f)

	got, err := f.accounts.AccountsWithTag(ctx, "work")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "alice", got[0].Identifier)

	got, err = f.accounts.AccountsWithTag(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, got, 2)

	_, err = f.accounts.AccountsWithTag(ctx, "a,b")
	require.ErrorIs(t, err, ErrInvalidTag)
}

func TestReplaceTag(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seeded := seedTagged(t, f)

	res, err := f.accounts.ReplaceTag(ctx, "shared", "team")
	require.NoError(t, err)
	require.Equal(t, TagReplaceResult{Matched: 2, Updated: 2}, res)

	alice, err := f.accounts.Get(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.Equal(t, "work, team", alice.Tags)

	carol, err := f.accounts.Get(ctx, seeded[2].ID)
	require.NoError(t, err)
	require.Equal(t, "team, work-old", carol.Tags)

	bob, err := f.accounts.Get(ctx, seeded[1].ID)
	require.NoError(t, err)
	require.Equal(t, "personal", bob.Tags)

	res, err = f.accounts.ReplaceTag(ctx, "missing", "other")
	require.NoError(t, err)
	require.Zero(t, res.Matched)

	_, err = f.accounts.ReplaceTag(ctx, "", "x")
	require.ErrorIs(t, err, ErrInvalidTag)
}

func TestSetTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seeded := seedTagged(t, f)

	require.NoError(t, f.accounts.SetTags(ctx, seeded[1].ID, " a ,b,, "))

	bob, err := f.accounts.Get(ctx, seeded[1].ID)
	require.NoError(t, err)
	require.Equal(t, "a, b", bob.Tags)

	require.ErrorIs(t, f.accounts.SetTags(ctx, 999, "x"), ErrAccountNotFound)
}

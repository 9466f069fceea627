package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/pkg/fieldcrypt"
	"github.com/aussiebroadwan/credvault/pkg/otpx"
	"github.com/stretchr/testify/require"
)

func TestAccountCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("requires identifier and password", func(t *testing.T) {
		_, err := f.accounts.Create(ctx, domain.Account{Identifier: "  ", Password: "x"})
		require.ErrorIs(t, err, ErrInvalidAccount)

		_, err = f.accounts.Create(ctx, domain.Account{Identifier: "alice"})
		require.ErrorIs(t, err, ErrInvalidAccount)
	})

	t.Run("appends to the end and normalizes", func(t *testing.T) {
		a, err := f.accounts.Create(ctx, domain.Account{
			Identifier:  " alice ",
			Password:    "p1",
			Email:       strPtr(" a@x.com "),
			TwoFASecret: strPtr("jbsw y3dp ehpk 3pxp"),
			Tags:        " x ,, y ",
		})
		require.NoError(t, err)
		require.NotZero(t, a.ID)
		require.Equal(t, 0, a.Order)
		require.Equal(t, "alice", a.Identifier)
		require.Equal(t, "a@x.com", *a.Email)
		require.Equal(t, "jbsw y3dp ehpk 3pxp", *a.TwoFASecret, "secret is kept as entered")
		require.Equal(t, "x, y", a.Tags)

		win, err := f.accounts.Code(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, f.otp.GenerateCode(testSecret), win.Code)

		b, err := f.accounts.Create(ctx, domain.Account{Identifier: "bob", Password: "p2"})
		require.NoError(t, err)
		require.Equal(t, 1, b.Order)
	})

	t.Run("stores ciphertext only", func(t *testing.T) {
		raw, err := f.store.Accounts().GetAccountField(ctx, 1, domain.FieldPassword)
		require.NoError(t, err)
		require.NotEqual(t, "p1", raw)

		res := f.cipher.Open(raw)
		require.Equal(t, fieldcrypt.Decrypted, res.Outcome)
		require.Equal(t, "p1", res.Value.String())
	})

	t.Run("rejects unknown group", func(t *testing.T) {
		missing := int64(99)
		_, err := f.accounts.Create(ctx, domain.Account{Identifier: "carol", Password: "p3", GroupID: &missing})
		require.ErrorIs(t, err, ErrGroupNotFound)
	})
}

func TestAccountUpdateKeepsOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.accounts.Create(ctx, domain.Account{Identifier: "alice", Password: "p1"})
	require.NoError(t, err)
	b, err := f.accounts.Create(ctx, domain.Account{Identifier: "bob", Password: "p2"})
	require.NoError(t, err)

	g, err := f.groups.Create(ctx, "Main")
	require.NoError(t, err)

	b.Password = "rotated"
	b.Order = 42
	b.GroupID = &g.ID
	got, err := f.accounts.Update(ctx, b)
	require.NoError(t, err)
	require.Equal(t, "rotated", got.Password)
	require.Equal(t, 1, got.Order)
	require.NotNil(t, got.Group)
	require.Equal(t, "Main", got.Group.Name)

	_, err = f.accounts.Update(ctx, domain.Account{ID: 404, Identifier: "x", Password: "y"})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, err := f.accounts.Create(ctx, domain.Account{Identifier: "alice", Password: "p1"})
	require.NoError(t, err)

	require.NoError(t, f.accounts.Delete(ctx, a.ID))
	require.ErrorIs(t, f.accounts.Delete(ctx, a.ID), ErrAccountNotFound)

	_, err = f.accounts.Get(ctx, a.ID)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountReorder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var ids []int64
	for _, name := range []string{"a", "b", "c"} {
		acc, err := f.accounts.Create(ctx, domain.Account{Identifier: name, Password: "pw"})
		require.NoError(t, err)
		ids = append(ids, acc.ID)
	}

	list, err := f.accounts.Reorder(ctx, []int64{ids[2], ids[0], ids[1]})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "c", list[0].Identifier)
	require.Equal(t, "a", list[1].Identifier)
	require.Equal(t, "b", list[2].Identifier)
	for i, a := range list {
		require.Equal(t, i, a.Order)
	}

	t.Run("duplicates rejected", func(t *testing.T) {
		_, err := f.accounts.Reorder(ctx, []int64{ids[0], ids[0]})
		require.ErrorIs(t, err, ErrInvalidReorder)
	})

	t.Run("unknown id rejected", func(t *testing.T) {
		_, err := f.accounts.Reorder(ctx, []int64{ids[0], ids[1], 999})
		require.ErrorIs(t, err, ErrInvalidReorder)

		list, err := f.accounts.List(ctx)
		require.NoError(t, err)
		require.Equal(t, "c", list[0].Identifier)
	})

	t.Run("partial list rejected", func(t *testing.T) {
		_, err := f.accounts.Reorder(ctx, []int64{ids[1]})
		require.ErrorIs(t, err, ErrInvalidReorder)

		list, err := f.accounts.List(ctx)
		require.NoError(t, err)
		for i, want := range []string{"c", "a", "b"} {
			require.Equal(t, want, list[i].Identifier)
			require.Equal(t, i, list[i].Order)
		}
	})
}

func TestAccountCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	with, err := f.accounts.Create(ctx, domain.Account{Identifier: "alice", Password: "p1", TwoFASecret: strPtr(testSecret)})
	require.NoError(t, err)
	without, err := f.accounts.Create(ctx, domain.Account{Identifier: "bob", Password: "p2"})
	require.NoError(t, err)
	broken, err := f.accounts.Create(ctx, domain.Account{Identifier: "carol", Password: "p3", TwoFASecret: strPtr("not base32!")})
	require.NoError(t, err)

	w, err := f.accounts.Code(ctx, with.ID)
	require.NoError(t, err)
	require.True(t, w.Valid)
	require.Equal(t, f.otp.GenerateCode(testSecret), w.Code)
	require.Equal(t, 15, w.Remaining)

	_, err = f.accounts.Code(ctx, without.ID)
	require.ErrorIs(t, err, ErrNoTwoFASecret)

	w, err = f.accounts.Code(ctx, broken.ID)
	require.NoError(t, err)
	require.False(t, w.Valid)
	require.Equal(t, otpx.Placeholder, w.Code)

	_, err = f.accounts.Code(ctx, 999)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountWatchCode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixture(t)

	a, err := f.accounts.Create(ctx, domain.Account{Identifier: "alice", Password: "p1", TwoFASecret: strPtr(testSecret)})
	require.NoError(t, err)

	ch, err := f.accounts.WatchCode(ctx, a.ID)
	require.NoError(t, err)

	first := <-ch
	require.Equal(t, f.otp.GenerateCode(testSecret), first.Code)
	cancel()
}

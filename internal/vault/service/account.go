package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/internal/vault/store"
	"github.com/aussiebroadwan/credvault/pkg/otpx"
)

var (
	ErrInvalidAccount  = errors.New("identifier and password are required")
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidReorder  = errors.New("reorder must list each account once")
	ErrNoTwoFASecret   = errors.New("account has no 2FA secret")
)

type AccountService struct {
	Store    store.Store
	Codec    *AccountCodec
	OTP      *otpx.Engine
	Exporter Exporter
}

func mapAccountErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// List returns every account in display order. Records that cannot be
// fully decrypted are returned degraded rather than dropped.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	stored, err := s.Store.Accounts().ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return s.Codec.DecodeAll(stored), nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (domain.Account, error) {
	stored, err := s.Store.Accounts().GetAccount(ctx, id)
	if err != nil {
		return domain.Account{}, mapAccountErr(err)
	}
	a, _ := s.Codec.Decode(stored)
	return a, nil
}

// Create stores a new account at the end of the list.
func (s *AccountService) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a = normalizeAccount(a)
	if a.Identifier == "" || a.Password == "" {
		return domain.Account{}, ErrInvalidAccount
	}

	enc, err := s.Codec.Encode(a)
	if err != nil {
		return domain.Account{}, err
	}

	var created domain.StoredAccount
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := checkGroup(ctx, tx, a.GroupID); err != nil {
			return err
		}

		next, err := tx.Accounts().NextAccountOrder(ctx)
		if err != nil {
			return fmt.Errorf("failed to get next order: %w", err)
		}
		enc.Order = next

		id, err := tx.Accounts().CreateAccount(ctx, enc)
		if err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		created, err = tx.Accounts().GetAccount(ctx, id)
		return err
	})
	if err != nil {
		return domain.Account{}, err
	}

	out, _ := s.Codec.Decode(created)
	return out, nil
}

// Update overwrites every field of the account except its position.
func (s *AccountService) Update(ctx context.Context, a domain.Account) (domain.Account, error) {
	a = normalizeAccount(a)
	if a.Identifier == "" || a.Password == "" {
		return domain.Account{}, ErrInvalidAccount
	}

	enc, err := s.Codec.Encode(a)
	if err != nil {
		return domain.Account{}, err
	}

	var updated domain.StoredAccount
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := checkGroup(ctx, tx, a.GroupID); err != nil {
			return err
		}
		if err := tx.Accounts().UpdateAccount(ctx, enc); err != nil {
			return mapAccountErr(err)
		}

		updated, err = tx.Accounts().GetAccount(ctx, a.ID)
		return err
	})
	if err != nil {
		return domain.Account{}, err
	}

	out, _ := s.Codec.Decode(updated)
	return out, nil
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return mapAccountErr(s.Store.Accounts().DeleteAccount(ctx, id))
}

// Reorder assigns positions 0..n-1 to ids in the given order and returns
// the reordered list.
func (s *AccountService) Reorder(ctx context.Context, ids []int64) ([]domain.Account, error) {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, ErrInvalidReorder
		}
		seen[id] = struct{}{}
	}

	var stored []domain.StoredAccount
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Accounts().ListAccounts(ctx)
		if err != nil {
			return err
		}
		// Every account must be placed exactly once
		if len(current) != len(ids) {
			return ErrInvalidReorder
		}
		for _, row := range current {
			if _, ok := seen[row.ID]; !ok {
				return ErrInvalidReorder
			}
		}

		for i, id := range ids {
			if err := tx.Accounts().UpdateAccountOrder(ctx, id, i); err != nil {
				return mapAccountErr(err)
			}
		}

		stored, err = tx.Accounts().ListAccounts(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.Codec.DecodeAll(stored), nil
}

// Code returns the current code window for the account's 2FA secret. A
// secret that is not valid base32 yields the placeholder code.
func (s *AccountService) Code(ctx context.Context, id int64) (otpx.CodeWindow, error) {
	secret, err := s.twoFASecret(ctx, id)
	if err != nil {
		return otpx.CodeWindow{}, err
	}
	return s.OTP.Window(secret), nil
}

// WatchCode streams code windows for the account until ctx is done.
func (s *AccountService) WatchCode(ctx context.Context, id int64) (<-chan otpx.CodeWindow, error) {
	secret, err := s.twoFASecret(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.OTP.Watch(ctx, secret), nil
}

func (s *AccountService) twoFASecret(ctx context.Context, id int64) (string, error) {
	raw, err := s.Store.Accounts().GetAccountField(ctx, id, domain.FieldTwoFASecret)
	if err != nil {
		return "", mapAccountErr(err)
	}
	secret := s.Codec.Cipher.DecryptString(raw)
	if strings.TrimSpace(secret) == "" {
		return "", ErrNoTwoFASecret
	}
	return secret, nil
}

func checkGroup(ctx context.Context, tx store.Tx, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	if _, err := tx.Groups().GetGroup(ctx, *groupID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	return nil
}

func normalizeAccount(a domain.Account) domain.Account {
	a.Identifier = strings.TrimSpace(a.Identifier)
	a.Email = trimOptional(a.Email)
	a.RecoveryEmail = trimOptional(a.RecoveryEmail)
	a.TwoFASecret = trimOptional(a.TwoFASecret)
	a.Tags = joinTags(tokenizeTags(a.Tags))
	return a
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(strings.TrimSpace(*s))
}

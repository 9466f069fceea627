package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/internal/vault/store"
)

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrGroupNameMissing = errors.New("group name is required")
	ErrGroupExists      = errors.New("a group with this name already exists")
	ErrGroupNotEmpty    = errors.New("group still has accounts; move or delete them before removing the group")
)

type GroupService struct {
	Store store.Store
}

func mapGroupErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrGroupNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrGroupExists
	default:
		return err
	}
}

// List returns every group in display order with account counts.
func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.Store.Groups().ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	return groups, nil
}

// Create adds a group at the end of the list.
func (s *GroupService) Create(ctx context.Context, name string) (domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Group{}, ErrGroupNameMissing
	}

	var g domain.Group
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		next, err := tx.Groups().NextGroupOrder(ctx)
		if err != nil {
			return err
		}

		id, err := tx.Groups().CreateGroup(ctx, domain.Group{Name: name, Order: next})
		if err != nil {
			return mapGroupErr(err)
		}

		g, err = tx.Groups().GetGroup(ctx, id)
		return err
	})
	return g, err
}

func (s *GroupService) Rename(ctx context.Context, id int64, name string) (domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Group{}, ErrGroupNameMissing
	}

	if err := s.Store.Groups().RenameGroup(ctx, id, name); err != nil {
		return domain.Group{}, mapGroupErr(err)
	}

	g, err := s.Store.Groups().GetGroup(ctx, id)
	if err != nil {
		return domain.Group{}, mapGroupErr(err)
	}
	return g, nil
}

// Delete removes an empty group. Groups that still own accounts are kept.
func (s *GroupService) Delete(ctx context.Context, id int64) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Groups().GetGroup(ctx, id); err != nil {
			return mapGroupErr(err)
		}

		count, err := tx.Accounts().CountAccountsInGroup(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrGroupNotEmpty
		}
		return mapGroupErr(tx.Groups().DeleteGroup(ctx, id))
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/internal/vault/store"
)

var ErrInvalidTag = errors.New("tag must not be empty or contain a comma")

// TagCandidate is an account that carries a searched tag.
type TagCandidate struct {
	ID         int64  `json:"id"`
	Identifier string `json:"userId"`
	Tags       string `json:"tags"`
}

// TagReplaceResult reports how many accounts matched and were rewritten.
type TagReplaceResult struct {
	Matched int `json:"matched"`
	Updated int `json:"updated"`
}

// tokenizeTags splits a comma separated tag string, trimming blanks.
func tokenizeTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func joinTags(tokens []string) string {
	return strings.Join(tokens, ", ")
}

func validTag(tag string) bool {
	return strings.TrimSpace(tag) != "" && !strings.Contains(tag, ",")
}

// UniqueTags returns every tag in use, in first-seen display order.
func (s *AccountService) UniqueTags(ctx context.Context) ([]string, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := []string{}
	seen := map[string]struct{}{}
	for _, a := range accounts {
		for _, t := range tokenizeTags(a.Tags) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out, nil
}

// AccountsWithTag lists accounts whose tags contain tag as an exact token.
func (s *AccountService) AccountsWithTag(ctx context.Context, tag string) ([]TagCandidate, error) {
	tag = strings.TrimSpace(tag)
	if !validTag(tag) {
		return nil, ErrInvalidTag
	}

	accounts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := []TagCandidate{}
	for _, a := range accounts {
		if slices.Contains(tokenizeTags(a.Tags), tag) {
			out = append(out, TagCandidate{ID: a.ID, Identifier: a.Identifier, Tags: a.Tags})
		}
	}
	return out, nil
}

// ReplaceTag renames tag from to to on every account that carries it. All
// rows are rewritten in one transaction.
func (s *AccountService) ReplaceTag(ctx context.Context, from, to string) (TagReplaceResult, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if !validTag(from) || !validTag(to) {
		return TagReplaceResult{}, ErrInvalidTag
	}

	var res TagReplaceResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		stored, err := tx.Accounts().ListAccounts(ctx)
		if err != nil {
			return err
		}

		for _, row := range stored {
			tokens := tokenizeTags(s.Codec.Cipher.DecryptString(row.Tags))
			if !slices.Contains(tokens, from) {
				continue
			}
			res.Matched++

			for i, t := range tokens {
				if t == from {
					tokens[i] = to
				}
			}
			enc, err := s.Codec.Cipher.EncryptString(joinTags(tokens))
			if err != nil {
				return err
			}
			if err := tx.Accounts().SetAccountField(ctx, row.ID, domain.FieldTags, enc); err != nil {
				return fmt.Errorf("failed to update tags of account %d: %w", row.ID, err)
			}
			res.Updated++
		}
		return nil
	})
	if err != nil {
		return TagReplaceResult{}, err
	}
	return res, nil
}

// SetTags replaces the full tag string of one account.
func (s *AccountService) SetTags(ctx context.Context, id int64, tags string) error {
	enc, err := s.Codec.Cipher.EncryptString(joinTags(tokenizeTags(tags)))
	if err != nil {
		return err
	}
	return mapAccountErr(s.Store.Accounts().SetAccountField(ctx, id, domain.FieldTags, enc))
}

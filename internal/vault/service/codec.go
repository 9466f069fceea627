package service

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/pkg/fieldcrypt"
)

// AccountCodec applies the field cipher to every sensitive attribute of a
// credential record.
type AccountCodec struct {
	Cipher *fieldcrypt.Cipher
	Logger *slog.Logger
}

func (c *AccountCodec) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Encode encrypts a for storage. Absent optional fields stay empty rather
// than becoming ciphertext of "". Any error means nothing may be persisted.
func (c *AccountCodec) Encode(a domain.Account) (domain.StoredAccount, error) {
	out := domain.StoredAccount{
		ID:        a.ID,
		DOB:       a.DOB,
		Order:     a.Order,
		GroupID:   a.GroupID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	fields := []struct {
		dst   *string
		value string
		name  domain.AccountField
	}{
		{&out.Identifier, a.Identifier, domain.FieldIdentifier},
		{&out.Password, a.Password, domain.FieldPassword},
		{&out.Email, deref(a.Email), domain.FieldEmail},
		{&out.EmailPassword, deref(a.EmailPassword), domain.FieldEmailPassword},
		{&out.RecoveryEmail, deref(a.RecoveryEmail), domain.FieldRecoveryEmail},
		{&out.TwoFASecret, deref(a.TwoFASecret), domain.FieldTwoFASecret},
		{&out.Tags, a.Tags, domain.FieldTags},
	}
	for _, f := range fields {
		enc, err := c.Cipher.EncryptString(f.value)
		if err != nil {
			return domain.StoredAccount{}, fmt.Errorf("encode %s: %w", f.name, err)
		}
		*f.dst = enc
	}
	return out, nil
}

// Decode decrypts a stored record. Each field is opened independently. If
// any field fails to authenticate, or decoding panics, the sanitized record
// is returned with ok false: identifier and password keep whatever could be
// recovered, every other sensitive field is cleared. Decode never fails.
func (c *AccountCodec) Decode(s domain.StoredAccount) (a domain.Account, ok bool) {
	a = domain.Account{
		ID:        s.ID,
		DOB:       s.DOB,
		Order:     s.Order,
		GroupID:   s.GroupID,
		Group:     s.Group,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger().Error("account decode panicked", "account_id", s.ID, "panic", fmt.Sprint(r))
			a, ok = sanitize(a), false
		}
	}()

	var failed []string
	open := func(field domain.AccountField, raw string) string {
		res := c.Cipher.Open(raw)
		switch res.Outcome {
		case fieldcrypt.Failed:
			failed = append(failed, string(field))
			return ""
		case fieldcrypt.PassThrough:
			if res.Err != nil {
				c.logger().Debug("field passed through", "account_id", s.ID, "field", string(field), "reason", res.Err.Error())
			}
		}
		return res.Value.String()
	}

	a.Identifier = open(domain.FieldIdentifier, s.Identifier)
	a.Password = open(domain.FieldPassword, s.Password)
	a.Email = optional(open(domain.FieldEmail, s.Email))
	a.EmailPassword = optional(open(domain.FieldEmailPassword, s.EmailPassword))
	a.RecoveryEmail = optional(open(domain.FieldRecoveryEmail, s.RecoveryEmail))
	a.TwoFASecret = optional(open(domain.FieldTwoFASecret, s.TwoFASecret))
	a.Tags = open(domain.FieldTags, s.Tags)

	if len(failed) > 0 {
		c.logger().Warn("account degraded", "account_id", s.ID, "fields", failed)
		return sanitize(a), false
	}
	return a, true
}

// DecodeAll decodes every record in order. Degraded records are kept.
func (c *AccountCodec) DecodeAll(stored []domain.StoredAccount) []domain.Account {
	out := make([]domain.Account, 0, len(stored))
	for _, s := range stored {
		a, _ := c.Decode(s)
		out = append(out, a)
	}
	return out
}

func sanitize(a domain.Account) domain.Account {
	a.Tags = ""
	a.Email = nil
	a.EmailPassword = nil
	a.RecoveryEmail = nil
	a.TwoFASecret = nil
	a.DOB = nil
	return a
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

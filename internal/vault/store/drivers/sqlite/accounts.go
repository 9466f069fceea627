package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/internal/vault/store"
)

type accountsRepo struct {
	db  dbtx
	now func() time.Time
}

const selectAccount = `
	SELECT a.id, a.identifier, a.password, a.email, a.email_password, a.recovery_email,
	       a.two_fa_secret, a.tags, a.dob, a.sort_order, a.group_id, g.name,
	       a.created_at, a.updated_at
	FROM accounts a
	LEFT JOIN account_groups g ON g.id = a.group_id`

type scanner interface {
	Scan(dest ...any) error
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.StoredAccount, error) {
	rows, err := r.db.QueryContext(ctx, selectAccount+` ORDER BY a.sort_order ASC, a.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StoredAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) GetAccount(ctx context.Context, id int64) (domain.StoredAccount, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, selectAccount+` WHERE a.id = ?`, id))
	if err != nil {
		return domain.StoredAccount{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.StoredAccount) (int64, error) {
	now := formatTime(r.now())
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (
			identifier, password, email, email_password, recovery_email, two_fa_secret,
			tags, dob, sort_order, group_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Identifier, a.Password, a.Email, a.EmailPassword, a.RecoveryEmail, a.TwoFASecret,
		a.Tags, mapOptionalDate(a.DOB), a.Order, mapOptionalInt64(a.GroupID), now, now,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *accountsRepo) UpdateAccount(ctx context.Context, a domain.StoredAccount) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE accounts SET
			identifier = ?, password = ?, email = ?, email_password = ?, recovery_email = ?,
			two_fa_secret = ?, tags = ?, dob = ?, group_id = ?, updated_at = ?
		WHERE id = ?`,
		a.Identifier, a.Password, a.Email, a.EmailPassword, a.RecoveryEmail,
		a.TwoFASecret, a.Tags, mapOptionalDate(a.DOB), mapOptionalInt64(a.GroupID),
		formatTime(r.now()), a.ID,
	))
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id int64) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id))
}

func (r *accountsRepo) UpdateAccountOrder(ctx context.Context, id int64, order int) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE accounts SET sort_order = ? WHERE id = ?`, order, id,
	))
}

func (r *accountsRepo) NextAccountOrder(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM accounts`).Scan(&next)
	return next, err
}

func (r *accountsRepo) GetAccountField(ctx context.Context, id int64, field domain.AccountField) (string, error) {
	if !field.Valid() {
		return "", fmt.Errorf("%w: %q", store.ErrUnknownField, field)
	}
	var value string
	// field is checked against a fixed whitelist above
	err := r.db.QueryRowContext(ctx, `SELECT `+string(field)+` FROM accounts WHERE id = ?`, id).Scan(&value)
	if err != nil {
		return "", mapNotFound(err)
	}
	return value, nil
}

func (r *accountsRepo) SetAccountField(ctx context.Context, id int64, field domain.AccountField, value string) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %q", store.ErrUnknownField, field)
	}
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE accounts SET `+string(field)+` = ?, updated_at = ? WHERE id = ?`,
		value, formatTime(r.now()), id,
	))
}

func (r *accountsRepo) CountAccountsInGroup(ctx context.Context, groupID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE group_id = ?`, groupID).Scan(&count)
	return count, err
}

func scanAccount(row scanner) (domain.StoredAccount, error) {
	var (
		a                    domain.StoredAccount
		dob, groupName       sql.NullString
		groupID              sql.NullInt64
		createdAt, updatedAt string
	)
	err := row.Scan(
		&a.ID, &a.Identifier, &a.Password, &a.Email, &a.EmailPassword, &a.RecoveryEmail,
		&a.TwoFASecret, &a.Tags, &dob, &a.Order, &groupID, &groupName,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return domain.StoredAccount{}, err
	}

	if a.DOB, err = mapNullDatePtr(dob); err != nil {
		return domain.StoredAccount{}, err
	}
	a.GroupID = mapNullInt64Ptr(groupID)
	if a.GroupID != nil && groupName.Valid {
		a.Group = &domain.GroupRef{ID: *a.GroupID, Name: groupName.String}
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.StoredAccount{}, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.StoredAccount{}, err
	}
	return a, nil
}

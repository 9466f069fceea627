package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
)

type usersRepo struct {
	db  dbtx
	now func() time.Time
}

const userColumns = `id, username, password, two_fa_secret, two_fa_enabled, last_login, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := formatTime(r.now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, two_fa_secret, two_fa_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Password, mapOptionalString(u.TwoFASecret), u.TwoFAEnabled, now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE id = ?`,
		formatTime(at), userID,
	))
}

func (r *usersRepo) UpdateTwoFASecret(ctx context.Context, userID string, secret string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET two_fa_secret = ?, updated_at = ? WHERE id = ?`,
		secret, formatTime(r.now()), userID,
	))
}

func (r *usersRepo) EnableTwoFA(ctx context.Context, userID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET two_fa_enabled = 1, updated_at = ? WHERE id = ?`,
		formatTime(r.now()), userID,
	))
}

func (r *usersRepo) DisableTwoFA(ctx context.Context, userID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET two_fa_enabled = 0, two_fa_secret = NULL, updated_at = ? WHERE id = ?`,
		formatTime(r.now()), userID,
	))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                    domain.User
		secret, lastLogin    sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Password, &secret, &u.TwoFAEnabled, &lastLogin, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.TwoFASecret = mapNullStringPtr(secret)
	if u.LastLogin, err = mapNullTimePtr(lastLogin); err != nil {
		return domain.User{}, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
)

type groupsRepo struct {
	db  dbtx
	now func() time.Time
}

const selectGroup = `
	SELECT g.id, g.name, g.sort_order,
	       (SELECT COUNT(*) FROM accounts a WHERE a.group_id = g.id),
	       g.created_at, g.updated_at
	FROM account_groups g`

func (r *groupsRepo) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, selectGroup+` ORDER BY g.sort_order ASC, g.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *groupsRepo) GetGroup(ctx context.Context, id int64) (domain.Group, error) {
	g, err := scanGroup(r.db.QueryRowContext(ctx, selectGroup+` WHERE g.id = ?`, id))
	if err != nil {
		return domain.Group{}, mapNotFound(err)
	}
	return g, nil
}

func (r *groupsRepo) CreateGroup(ctx context.Context, g domain.Group) (int64, error) {
	now := formatTime(r.now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO account_groups (name, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		g.Name, g.Order, now, now,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *groupsRepo) RenameGroup(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE account_groups SET name = ?, updated_at = ? WHERE id = ?`,
		name, formatTime(r.now()), id,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res, nil)
}

func (r *groupsRepo) DeleteGroup(ctx context.Context, id int64) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM account_groups WHERE id = ?`, id))
}

func (r *groupsRepo) NextGroupOrder(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM account_groups`).Scan(&next)
	return next, err
}

func scanGroup(row scanner) (domain.Group, error) {
	var (
		g                    domain.Group
		createdAt, updatedAt string
	)
	if err := row.Scan(&g.ID, &g.Name, &g.Order, &g.AccountCount, &createdAt, &updatedAt); err != nil {
		return domain.Group{}, err
	}

	var err error
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Group{}, err
	}
	if g.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Group{}, err
	}
	return g, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/opotrack/opotrack/store"
)

func (d *DB) UpsertWorkspaceSetting(ctx context.Context, upsert *store.WorkspaceSetting) (*store.WorkspaceSetting, error) {
	stmt := `
		INSERT INTO workspace_setting (name, value)
		VALUES (` + placeholders(2) + `)
		ON CONFLICT(name) DO UPDATE SET value = EXCLUDED.value`
	if _, err := d.db.ExecContext(ctx, stmt, upsert.Name, upsert.Value); err != nil {
		return nil, fmt.Errorf("failed to upsert workspace setting: %w", err)
	}
	return upsert, nil
}

func (d *DB) ListWorkspaceSettings(ctx context.Context, find *store.FindWorkspaceSetting) ([]*store.WorkspaceSetting, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.Name; v != nil {
		where, args = append(where, "name = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT name, value FROM workspace_setting WHERE ` + strings.Join(where, " AND ")
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspace settings: %w", err)
	}
	defer rows.Close()

	list := make([]*store.WorkspaceSetting, 0)
	for rows.Next() {
		var setting store.WorkspaceSetting
		if err := rows.Scan(&setting.Name, &setting.Value); err != nil {
			return nil, fmt.Errorf("failed to scan workspace setting: %w", err)
		}
		list = append(list, &setting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workspace settings: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteWorkspaceSetting(ctx context.Context, delete *store.DeleteWorkspaceSetting) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM workspace_setting WHERE name = `+placeholder(1), delete.Name); err != nil {
		return fmt.Errorf("failed to delete workspace setting: %w", err)
	}
	return nil
}

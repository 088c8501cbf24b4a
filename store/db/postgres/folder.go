package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/opotrack/opotrack/store"
)

func (d *DB) CreateFolder(ctx context.Context, create *store.Folder) (*store.Folder, error) {
	fields := []string{"uid", "name", "position"}
	args := []any{create.UID, create.Name, create.Position}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		args = append(args, create.CreatedTs)
	}

	stmt := `INSERT INTO folder (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return create, nil
}

func (d *DB) ListFolders(ctx context.Context, find *store.FindFolder) ([]*store.Folder, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "folder.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "folder.uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, name, position
		FROM folder
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY folder.position ASC, folder.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Folder, 0)
	for rows.Next() {
		var folder store.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.UID,
			&folder.CreatedTs,
			&folder.Name,
			&folder.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		list = append(list, &folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate folders: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateFolder(ctx context.Context, update *store.UpdateFolder) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Position; v != nil {
		set, args = append(set, "position = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}
	args = append(args, update.ID)

	stmt := `UPDATE folder SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}
	return nil
}

func (d *DB) DeleteFolder(ctx context.Context, delete *store.DeleteFolder) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM folder WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("folder not found")
	}
	return nil
}

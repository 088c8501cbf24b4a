package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/opotrack/opotrack/store"
)

func (d *DB) CreateCategory(ctx context.Context, create *store.Category) (*store.Category, error) {
	fields := []string{"uid", "name", "position", "folder_uid"}
	args := []any{create.UID, create.Name, create.Position, create.FolderUID}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		args = append(args, create.CreatedTs)
	}

	stmt := `INSERT INTO category (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return create, nil
}

func (d *DB) ListCategories(ctx context.Context, find *store.FindCategory) ([]*store.Category, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "category.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "category.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if find.GlobalOnly {
		where = append(where, "category.folder_uid IS NULL")
	}
	if v := find.FolderUID; v != nil {
		where, args = append(where, "category.folder_uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, name, position, folder_uid
		FROM category
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY category.position ASC, category.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Category, 0)
	for rows.Next() {
		var category store.Category
		var folderUID sql.NullString
		if err := rows.Scan(
			&category.ID,
			&category.UID,
			&category.CreatedTs,
			&category.Name,
			&category.Position,
			&folderUID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if folderUID.Valid {
			category.FolderUID = &folderUID.String
		}
		list = append(list, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateCategory(ctx context.Context, update *store.UpdateCategory) error {
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

	stmt := `UPDATE category SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (d *DB) DeleteCategory(ctx context.Context, delete *store.DeleteCategory) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM category WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/opotrack/opotrack/store"
)

func (d *DB) CreateBulletin(ctx context.Context, create *store.Bulletin) (*store.Bulletin, error) {
	completed, err := marshalExercises(create.CompletedExercises)
	if err != nil {
		return nil, err
	}

	fields := []string{"uid", "title", "note", "exercise_count", "completed_exercises", "folder_uid"}
	args := []any{create.UID, create.Title, create.Note, create.ExerciseCount, completed, create.FolderUID}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		args = append(args, create.CreatedTs)
	}
	if create.UpdatedTs != 0 {
		fields = append(fields, "updated_ts")
		args = append(args, create.UpdatedTs)
	}

	stmt := `INSERT INTO bulletin (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create bulletin: %w", err)
	}

	return create, nil
}

func (d *DB) ListBulletins(ctx context.Context, find *store.FindBulletin) ([]*store.Bulletin, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "bulletin.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "bulletin.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.FolderUID; v != nil {
		where, args = append(where, "bulletin.folder_uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, created_ts, updated_ts,
			title, note, exercise_count, completed_exercises, folder_uid
		FROM bulletin
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY bulletin.created_ts ASC, bulletin.id ASC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bulletins: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Bulletin, 0)
	for rows.Next() {
		var bulletin store.Bulletin
		var completed string
		var folderUID sql.NullString
		if err := rows.Scan(
			&bulletin.ID,
			&bulletin.UID,
			&bulletin.CreatedTs,
			&bulletin.UpdatedTs,
			&bulletin.Title,
			&bulletin.Note,
			&bulletin.ExerciseCount,
			&completed,
			&folderUID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bulletin: %w", err)
		}

		if bulletin.CompletedExercises, err = unmarshalExercises(completed); err != nil {
			return nil, err
		}
		if folderUID.Valid {
			bulletin.FolderUID = &folderUID.String
		}
		list = append(list, &bulletin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bulletins: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateBulletin(ctx context.Context, update *store.UpdateBulletin) error {
	set, args := []string{}, []any{}

	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Note; v != nil {
		set, args = append(set, "note = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ExerciseCount; v != nil {
		set, args = append(set, "exercise_count = "+placeholder(len(args)+1)), append(args, *v)
	}
	if update.CompletedExercises != nil {
		completed, err := marshalExercises(update.CompletedExercises)
		if err != nil {
			return err
		}
		set, args = append(set, "completed_exercises = "+placeholder(len(args)+1)), append(args, completed)
	}
	if v := update.FolderUID; v != nil {
		set, args = append(set, "folder_uid = "+placeholder(len(args)+1)), append(args, nullableFolder(*v))
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}
	args = append(args, update.ID)

	stmt := `UPDATE bulletin SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update bulletin: %w", err)
	}
	return nil
}

func (d *DB) DeleteBulletin(ctx context.Context, delete *store.DeleteBulletin) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM bulletin WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete bulletin: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("bulletin not found")
	}
	return nil
}

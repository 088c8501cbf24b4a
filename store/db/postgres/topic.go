package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/opotrack/opotrack/store"
)

func (d *DB) CreateTopic(ctx context.Context, create *store.Topic) (*store.Topic, error) {
	checks, err := marshalChecks(create.Checks)
	if err != nil {
		return nil, err
	}

	fields := []string{"uid", "title", "note", "checks", "review_count", "folder_uid"}
	args := []any{create.UID, create.Title, create.Note, checks, create.ReviewCount, create.FolderUID}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		args = append(args, create.CreatedTs)
	}
	if create.UpdatedTs != 0 {
		fields = append(fields, "updated_ts")
		args = append(args, create.UpdatedTs)
	}

	stmt := `INSERT INTO topic (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	return create, nil
}

func (d *DB) ListTopics(ctx context.Context, find *store.FindTopic) ([]*store.Topic, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "topic.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "topic.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.FolderUID; v != nil {
		where, args = append(where, "topic.folder_uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, created_ts, updated_ts,
			title, note, checks, review_count, folder_uid
		FROM topic
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY topic.created_ts ASC, topic.id ASC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Topic, 0)
	for rows.Next() {
		var topic store.Topic
		var checks string
		var folderUID sql.NullString
		if err := rows.Scan(
			&topic.ID,
			&topic.UID,
			&topic.CreatedTs,
			&topic.UpdatedTs,
			&topic.Title,
			&topic.Note,
			&checks,
			&topic.ReviewCount,
			&folderUID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}

		if topic.Checks, err = unmarshalChecks(checks); err != nil {
			return nil, err
		}
		if folderUID.Valid {
			topic.FolderUID = &folderUID.String
		}
		list = append(list, &topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateTopic(ctx context.Context, update *store.UpdateTopic) error {
	set, args := []string{}, []any{}

	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Note; v != nil {
		set, args = append(set, "note = "+placeholder(len(args)+1)), append(args, *v)
	}
	if update.Checks != nil {
		checks, err := marshalChecks(update.Checks)
		if err != nil {
			return err
		}
		set, args = append(set, "checks = "+placeholder(len(args)+1)), append(args, checks)
	}
	if v := update.ReviewCount; v != nil {
		set, args = append(set, "review_count = "+placeholder(len(args)+1)), append(args, *v)
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

	stmt := `UPDATE topic SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	return nil
}

func (d *DB) DeleteTopic(ctx context.Context, delete *store.DeleteTopic) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM topic WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("topic not found")
	}
	return nil
}

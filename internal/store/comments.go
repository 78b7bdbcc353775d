// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/oblog/internal/model"
)

const commentColumns = `id, post_id, name, email, body, active, created_at, updated_at`

func scanComment(row rowScanner) (model.Comment, error) {
	var (
		c                model.Comment
		created, updated sqliteTime
	)
	if err := row.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.Active, &created, &updated); err != nil {
		return model.Comment{}, err
	}
	c.CreatedAt = created.Time
	c.UpdatedAt = updated.Time
	return c, nil
}

// ListActiveComments returns the active comments of a post, oldest first.
func (q *Queries) ListActiveComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+commentColumns+` FROM comments
		WHERE post_id = ? AND active = 1
		ORDER BY created_at ASC, id ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var comments []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateComment inserts an active comment attached to a post.
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (model.Comment, error) {
	now := dbTime(q.now())
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, name, email, body, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		RETURNING `+commentColumns,
		arg.PostID, arg.Name, arg.Email, arg.Body, now, now,
	)

	c, err := scanComment(row)
	if err != nil {
		return model.Comment{}, fmt.Errorf("creating comment for post %d: %w", arg.PostID, err)
	}
	return c, nil
}

// SetCommentActive toggles the moderation flag of a comment.
func (q *Queries) SetCommentActive(ctx context.Context, id int64, active bool) error {
	res, err := q.db.ExecContext(ctx, `UPDATE comments SET active = ?, updated_at = ? WHERE id = ?`,
		active, dbTime(q.now()), id)
	if err != nil {
		return fmt.Errorf("updating comment %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/oblog/internal/model"
)

// GetTagBySlug returns the tag with the slug.
func (q *Queries) GetTagBySlug(ctx context.Context, slug string) (model.Tag, error) {
	var t model.Tag
	err := q.db.QueryRowContext(ctx, `SELECT id, name, slug FROM tags WHERE slug = ?`, slug).
		Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return model.Tag{}, notFound(err)
	}
	return t, nil
}

// ListTagsForPost returns the tags of a post ordered by name.
func (q *Queries) ListTagsForPost(ctx context.Context, postID int64) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = ?
		ORDER BY t.name`, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CreateTag inserts a tag.
func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (model.Tag, error) {
	if err := CheckSlug(arg.Slug); err != nil {
		return model.Tag{}, fmt.Errorf("creating tag: %w", err)
	}
	var t model.Tag
	err := q.db.QueryRowContext(ctx, `INSERT INTO tags (name, slug) VALUES (?, ?) RETURNING id, name, slug`,
		arg.Name, arg.Slug).Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Tag{}, fmt.Errorf("creating tag %q: %w", arg.Slug, ErrDuplicateSlug)
		}
		return model.Tag{}, fmt.Errorf("creating tag %q: %w", arg.Slug, err)
	}
	return t, nil
}

// AddTagToPost associates a tag with a post. Adding an existing association
// is a no-op.
func (q *Queries) AddTagToPost(ctx context.Context, postID, tagID int64) error {
	_, err := q.db.ExecContext(ctx, `INSERT OR IGNORE INTO post_tags (post_id, tag_id) VALUES (?, ?)`, postID, tagID)
	if err != nil {
		return fmt.Errorf("tagging post %d: %w", postID, err)
	}
	return nil
}

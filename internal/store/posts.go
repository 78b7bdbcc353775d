// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/oblog/internal/model"
)

const publishedOrder = `ORDER BY p.publish DESC, p.id DESC`

// ListPublishedPosts returns a page of published posts, newest first.
func (q *Queries) ListPublishedPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return q.queryPosts(ctx, `SELECT `+postColumns+` `+postFrom+`
		WHERE p.status = 'published'
		`+publishedOrder+`
		LIMIT ? OFFSET ?`, limit, offset)
}

// CountPublishedPosts returns the number of published posts.
func (q *Queries) CountPublishedPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE status = 'published'`).Scan(&n)
	return n, err
}

// ListPublishedPostsByTag returns a page of published posts carrying the tag.
func (q *Queries) ListPublishedPostsByTag(ctx context.Context, tagID int64, limit, offset int) ([]model.Post, error) {
	return q.queryPosts(ctx, `SELECT `+postColumns+` `+postFrom+`
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE p.status = 'published' AND pt.tag_id = ?
		`+publishedOrder+`
		LIMIT ? OFFSET ?`, tagID, limit, offset)
}

// CountPublishedPostsByTag returns the number of published posts carrying the tag.
func (q *Queries) CountPublishedPostsByTag(ctx context.Context, tagID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM posts p
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE p.status = 'published' AND pt.tag_id = ?`, tagID).Scan(&n)
	return n, err
}

// GetPublishedPostByDate returns the published post with the slug on the
// given publish date.
func (q *Queries) GetPublishedPostByDate(ctx context.Context, slug string, date model.Date) (model.Post, error) {
	return q.getPost(ctx, `SELECT `+postColumns+` `+postFrom+`
		WHERE p.status = 'published' AND p.slug = ? AND p.publish_date = ?`, slug, date.String())
}

// GetPublishedPostByID returns the published post with the id.
func (q *Queries) GetPublishedPostByID(ctx context.Context, id int64) (model.Post, error) {
	return q.getPost(ctx, `SELECT `+postColumns+` `+postFrom+`
		WHERE p.status = 'published' AND p.id = ?`, id)
}

// GetPostByID returns a post regardless of its status. It is not used by
// the public handlers.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	return q.getPost(ctx, `SELECT `+postColumns+` `+postFrom+` WHERE p.id = ?`, id)
}

func (q *Queries) getPost(ctx context.Context, query string, args ...any) (model.Post, error) {
	p, err := scanPost(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.Post{}, notFound(err)
	}

	posts := []model.Post{p}
	if err := q.attachTags(ctx, posts); err != nil {
		return model.Post{}, err
	}
	return posts[0], nil
}

// ListAllPublishedPosts returns every published post, newest first.
func (q *Queries) ListAllPublishedPosts(ctx context.Context) ([]model.Post, error) {
	return q.queryPosts(ctx, `SELECT `+postColumns+` `+postFrom+`
		WHERE p.status = 'published'
		`+publishedOrder)
}

// ListRelatedPosts returns published posts sharing at least one tag with the
// post, ranked by the number of shared tags and then by publish date.
func (q *Queries) ListRelatedPosts(ctx context.Context, postID int64, limit int) ([]model.RelatedPost, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+postColumns+`, COUNT(pt.tag_id) AS shared_tags
		`+postFrom+`
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE p.status = 'published'
			AND p.id <> ?
			AND pt.tag_id IN (SELECT tag_id FROM post_tags WHERE post_id = ?)
		GROUP BY p.id
		ORDER BY shared_tags DESC, p.publish DESC, p.id DESC
		LIMIT ?`, postID, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing related posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var related []model.RelatedPost
	for rows.Next() {
		var shared int64
		p, err := scanPost(rows, &shared)
		if err != nil {
			return nil, err
		}
		related = append(related, model.RelatedPost{Post: p, SharedTags: shared})
	}
	return related, rows.Err()
}

// CreatePost inserts a post. created_at and updated_at are both set to now.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	if err := CheckSlug(arg.Slug); err != nil {
		return model.Post{}, fmt.Errorf("creating post: %w", err)
	}
	now := q.now()
	arg = arg.Defaults(now)

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO posts (title, slug, author_id, body, publish, publish_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.AuthorID, arg.Body,
		dbTime(arg.Publish), model.DateOf(arg.Publish, q.loc).String(), arg.Status,
		dbTime(now), dbTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Post{}, fmt.Errorf("creating post %q: %w", arg.Slug, ErrDuplicateSlug)
		}
		return model.Post{}, fmt.Errorf("creating post %q: %w", arg.Slug, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, err
	}
	return q.GetPostByID(ctx, id)
}

// UpdatePost replaces the mutable fields of a post and refreshes updated_at.
// created_at is never written.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error) {
	if err := CheckSlug(arg.Slug); err != nil {
		return model.Post{}, fmt.Errorf("updating post %d: %w", arg.ID, err)
	}
	res, err := q.db.ExecContext(ctx, `
		UPDATE posts
		SET title = ?, slug = ?, body = ?, publish = ?, publish_date = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		arg.Title, arg.Slug, arg.Body,
		dbTime(arg.Publish), model.DateOf(arg.Publish, q.loc).String(), arg.Status,
		dbTime(q.now()), arg.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Post{}, fmt.Errorf("updating post %d: %w", arg.ID, ErrDuplicateSlug)
		}
		return model.Post{}, fmt.Errorf("updating post %d: %w", arg.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return model.Post{}, err
	}
	if n == 0 {
		return model.Post{}, ErrNotFound
	}
	return q.GetPostByID(ctx, arg.ID)
}

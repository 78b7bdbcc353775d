// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/store"
)

const publishedOrder = `ORDER BY p.publish DESC, p.id DESC`

// ListPublishedPosts returns a page of published posts, newest first.
func (s *Store) ListPublishedPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` `+postFrom+`
		WHERE p.status = 'published'
		`+publishedOrder+`
		LIMIT $1 OFFSET $2`, limit, offset)
}

// CountPublishedPosts returns the number of published posts.
func (s *Store) CountPublishedPosts(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE status = 'published'`).Scan(&n)
	return n, err
}

// ListPublishedPostsByTag returns a page of published posts carrying the tag.
func (s *Store) ListPublishedPostsByTag(ctx context.Context, tagID int64, limit, offset int) ([]model.Post, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` `+postFrom+`
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE p.status = 'published' AND pt.tag_id = $1
		`+publishedOrder+`
		LIMIT $2 OFFSET $3`, tagID, limit, offset)
}

// CountPublishedPostsByTag returns the number of published posts carrying the tag.
func (s *Store) CountPublishedPostsByTag(ctx context.Context, tagID int64) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM posts p
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE p.status = 'published' AND pt.tag_id = $1`, tagID).Scan(&n)
	return n, err
}

// GetPublishedPostByDate returns the published post with the slug on the
// given publish date.
func (s *Store) GetPublishedPostByDate(ctx context.Context, slug string, date model.Date) (model.Post, error) {
	return s.getPost(ctx, `SELECT `+postColumns+` `+postFrom+`
		WHERE p.status = 'published' AND p.slug = $1 AND p.publish_date = $2::text::date`, slug, date.String())
}

// GetPublishedPostByID returns the published post with the id.
func (s *Store) GetPublishedPostByID(ctx context.Context, id int64) (model.Post, error) {
	return s.getPost(ctx, `SELECT `+postColumns+` `+postFrom+`
		WHERE p.status = 'published' AND p.id = $1`, id)
}

// GetPostByID returns a post regardless of its status.
func (s *Store) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	return s.getPost(ctx, `SELECT `+postColumns+` `+postFrom+` WHERE p.id = $1`, id)
}

func (s *Store) getPost(ctx context.Context, query string, args ...any) (model.Post, error) {
	p, err := scanPost(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return model.Post{}, notFound(err)
	}

	posts := []model.Post{p}
	if err := s.attachTags(ctx, posts); err != nil {
		return model.Post{}, err
	}
	return posts[0], nil
}

// ListAllPublishedPosts returns every published post, newest first.
func (s *Store) ListAllPublishedPosts(ctx context.Context) ([]model.Post, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` `+postFrom+`
		WHERE p.status = 'published'
		`+publishedOrder)
}

// ListRelatedPosts returns published posts sharing at least one tag with the
// post, ranked by the number of shared tags and then by publish date.
func (s *Store) ListRelatedPosts(ctx context.Context, postID int64, limit int) ([]model.RelatedPost, error) {
	rows, err := s.db.Query(ctx, `SELECT `+postColumns+`, COUNT(pt.tag_id) AS shared_tags
		`+postFrom+`
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE p.status = 'published'
			AND p.id <> $1
			AND pt.tag_id IN (SELECT tag_id FROM post_tags WHERE post_id = $1)
		GROUP BY p.id, u.id
		ORDER BY shared_tags DESC, p.publish DESC, p.id DESC
		LIMIT $2`, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing related posts: %w", err)
	}
	defer rows.Close()

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

// SearchPublishedPosts returns published posts whose title is trigram-similar
// to the query above the threshold. Results are ordered by similarity, then
// by ts_rank over the title (weight A) and body (weight B) vector.
func (s *Store) SearchPublishedPosts(ctx context.Context, arg store.SearchParams) ([]model.SearchResult, error) {
	if strings.TrimSpace(arg.Query) == "" {
		return nil, nil
	}
	language := arg.Language
	if language == "" {
		language = "simple"
	}
	// LIMIT NULL is LIMIT ALL.
	var limit *int
	if arg.Limit > 0 {
		limit = &arg.Limit
	}

	rows, err := s.db.Query(ctx, `SELECT `+postColumns+`,
			similarity(p.title, $1) AS sim,
			ts_rank(
				'{0.1, 0.2, 0.4, 1.0}',
				setweight(to_tsvector($2::text::regconfig, p.title), 'A') ||
				setweight(to_tsvector($2::text::regconfig, p.body), 'B'),
				plainto_tsquery($2::text::regconfig, $1)
			) AS fts_rank
		`+postFrom+`
		WHERE p.status = 'published' AND similarity(p.title, $1) > $3::float8
		ORDER BY sim DESC, fts_rank DESC, p.publish DESC
		LIMIT $4::bigint`, arg.Query, language, arg.Threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	defer rows.Close()

	var results []model.SearchResult
	for rows.Next() {
		var (
			r        model.SearchResult
			sim, rnk float32
		)
		p, err := scanPost(rows, &sim, &rnk)
		if err != nil {
			return nil, err
		}
		r.Post = p
		r.Similarity = float64(sim)
		r.Rank = float64(rnk)
		results = append(results, r)
	}
	return results, rows.Err()
}

// CreatePost inserts a post. created_at and updated_at are both set to now.
func (s *Store) CreatePost(ctx context.Context, arg store.CreatePostParams) (model.Post, error) {
	if err := store.CheckSlug(arg.Slug); err != nil {
		return model.Post{}, fmt.Errorf("creating post: %w", err)
	}
	now := s.timestamp()
	arg = arg.Defaults(now)

	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO posts (title, slug, author_id, body, publish, publish_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::text::date, $7, $8, $8)
		RETURNING id`,
		arg.Title, arg.Slug, arg.AuthorID, arg.Body,
		arg.Publish.UTC(), model.DateOf(arg.Publish, s.loc).String(), arg.Status, now,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Post{}, fmt.Errorf("creating post %q: %w", arg.Slug, store.ErrDuplicateSlug)
		}
		return model.Post{}, fmt.Errorf("creating post %q: %w", arg.Slug, err)
	}
	return s.GetPostByID(ctx, id)
}

// UpdatePost replaces the mutable fields of a post and refreshes updated_at.
func (s *Store) UpdatePost(ctx context.Context, arg store.UpdatePostParams) (model.Post, error) {
	if err := store.CheckSlug(arg.Slug); err != nil {
		return model.Post{}, fmt.Errorf("updating post %d: %w", arg.ID, err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE posts
		SET title = $1, slug = $2, body = $3, publish = $4, publish_date = $5::text::date, status = $6, updated_at = $7
		WHERE id = $8`,
		arg.Title, arg.Slug, arg.Body,
		arg.Publish.UTC(), model.DateOf(arg.Publish, s.loc).String(), arg.Status,
		s.timestamp(), arg.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Post{}, fmt.Errorf("updating post %d: %w", arg.ID, store.ErrDuplicateSlug)
		}
		return model.Post{}, fmt.Errorf("updating post %d: %w", arg.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.Post{}, store.ErrNotFound
	}
	return s.GetPostByID(ctx, arg.ID)
}

// GetTagBySlug returns the tag with the slug.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRow(ctx, `SELECT id, name, slug FROM tags WHERE slug = $1`, slug).
		Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return model.Tag{}, notFound(err)
	}
	return t, nil
}

// ListTagsForPost returns the tags of a post ordered by name.
func (s *Store) ListTagsForPost(ctx context.Context, postID int64) ([]model.Tag, error) {
	rows, err := s.db.Query(ctx, `
		SELECT t.id, t.name, t.slug FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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
func (s *Store) CreateTag(ctx context.Context, arg store.CreateTagParams) (model.Tag, error) {
	if err := store.CheckSlug(arg.Slug); err != nil {
		return model.Tag{}, fmt.Errorf("creating tag: %w", err)
	}
	var t model.Tag
	err := s.db.QueryRow(ctx, `INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id, name, slug`,
		arg.Name, arg.Slug).Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Tag{}, fmt.Errorf("creating tag %q: %w", arg.Slug, store.ErrDuplicateSlug)
		}
		return model.Tag{}, fmt.Errorf("creating tag %q: %w", arg.Slug, err)
	}
	return t, nil
}

// AddTagToPost associates a tag with a post. Adding an existing association
// is a no-op.
func (s *Store) AddTagToPost(ctx context.Context, postID, tagID int64) error {
	_, err := s.db.Exec(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, postID, tagID)
	if err != nil {
		return fmt.Errorf("tagging post %d: %w", postID, err)
	}
	return nil
}

const commentColumns = `id, post_id, name, email, body, active, created_at, updated_at`

func scanComment(row pgx.Row) (model.Comment, error) {
	var c model.Comment
	if err := row.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Comment{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

// ListActiveComments returns the active comments of a post, oldest first.
func (s *Store) ListActiveComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := s.db.Query(ctx, `SELECT `+commentColumns+` FROM comments
		WHERE post_id = $1 AND active
		ORDER BY created_at ASC, id ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

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
func (s *Store) CreateComment(ctx context.Context, arg store.CreateCommentParams) (model.Comment, error) {
	c, err := scanComment(s.db.QueryRow(ctx, `
		INSERT INTO comments (post_id, name, email, body, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		RETURNING `+commentColumns,
		arg.PostID, arg.Name, arg.Email, arg.Body, s.timestamp(),
	))
	if err != nil {
		return model.Comment{}, fmt.Errorf("creating comment for post %d: %w", arg.PostID, err)
	}
	return c, nil
}

// SetCommentActive toggles the moderation flag of a comment.
func (s *Store) SetCommentActive(ctx context.Context, id int64, active bool) error {
	tag, err := s.db.Exec(ctx, `UPDATE comments SET active = $1, updated_at = $2 WHERE id = $3`,
		active, s.timestamp(), id)
	if err != nil {
		return fmt.Errorf("updating comment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

const userColumns = `id, username, email, password_hash, role, name, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// CreateUser inserts an author.
func (s *Store) CreateUser(ctx context.Context, arg store.CreateUserParams) (model.User, error) {
	role := arg.Role
	if role == "" {
		role = "author"
	}

	u, err := scanUser(s.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING `+userColumns,
		arg.Username, arg.Email, arg.PasswordHash, role, arg.Name, s.timestamp(),
	))
	if err != nil {
		return model.User{}, fmt.Errorf("creating user %q: %w", arg.Username, err)
	}
	return u, nil
}

// GetUserByUsername returns the user with the username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return model.User{}, notFound(err)
	}
	return u, nil
}

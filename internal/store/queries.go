// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/olegiv/oblog/internal/model"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries implements Repository on SQLite.
type Queries struct {
	db  DBTX
	loc *time.Location
	now func() time.Time
}

var _ Repository = (*Queries)(nil)

// New returns Queries over db. Publish dates are computed in UTC until
// WithLocation is used.
func New(db DBTX) *Queries {
	return &Queries{db: db, loc: time.UTC, now: time.Now}
}

// WithLocation returns a copy of q that derives publish dates in loc.
func (q *Queries) WithLocation(loc *time.Location) *Queries {
	if loc == nil {
		loc = time.UTC
	}
	return &Queries{db: q.db, loc: loc, now: q.now}
}

// WithTx returns a copy of q that runs inside tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, loc: q.loc, now: q.now}
}

// Ping checks the database connection.
func (q *Queries) Ping(ctx context.Context) error {
	p, ok := q.db.(interface{ PingContext(context.Context) error })
	if !ok {
		return nil
	}
	return p.PingContext(ctx)
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

const postColumns = `p.id, p.title, p.slug, p.author_id, u.username, u.name, p.body,
	p.publish, p.publish_date, p.status, p.created_at, p.updated_at`

const postFrom = `FROM posts p JOIN users u ON u.id = p.author_id`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPost scans postColumns followed by any extra destinations.
func scanPost(row rowScanner, extra ...any) (model.Post, error) {
	var (
		p                        model.Post
		username, name, date     string
		publish, created, update sqliteTime
	)
	dest := []any{
		&p.ID, &p.Title, &p.Slug, &p.AuthorID, &username, &name, &p.Body,
		&publish, &date, &p.Status, &created, &update,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return model.Post{}, err
	}

	d, err := model.ParseDate(date)
	if err != nil {
		return model.Post{}, err
	}

	p.PublishDate = d
	p.Publish = publish.Time
	p.CreatedAt = created.Time
	p.UpdatedAt = update.Time
	p.AuthorName = name
	if p.AuthorName == "" {
		p.AuthorName = username
	}
	return p, nil
}

func (q *Queries) queryPosts(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := q.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// attachTags loads the tags of every post in one query.
func (q *Queries) attachTags(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]any, len(posts))
	index := make(map[int64]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := q.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id IN (%s)
		ORDER BY t.name`, placeholders(len(ids))), ids...)
	if err != nil {
		return fmt.Errorf("loading post tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			postID int64
			t      model.Tag
		)
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug); err != nil {
			return err
		}
		i := index[postID]
		posts[i].Tags = append(posts[i].Tags, t)
	}
	return rows.Err()
}

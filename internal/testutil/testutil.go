// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the blog packages.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "oblog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// TestRepo returns a SQLite repository backed by a temporary database that
// is closed when the test ends.
func TestRepo(t *testing.T) *store.Queries {
	t.Helper()

	db, cleanup := TestDB(t)
	t.Cleanup(cleanup)
	return store.New(db)
}

// Fixtures creates authors, tags and posts for tests.
type Fixtures struct {
	t      *testing.T
	repo   store.Repository
	author model.User
}

// NewFixtures creates a fixture builder with one author.
func NewFixtures(t *testing.T, repo store.Repository) *Fixtures {
	t.Helper()

	author, err := repo.CreateUser(context.Background(), store.CreateUserParams{
		Username:     "author",
		Email:        "author@example.com",
		PasswordHash: "x",
		Name:         "Test Author",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return &Fixtures{t: t, repo: repo, author: author}
}

// Author returns the fixture author.
func (f *Fixtures) Author() model.User {
	return f.author
}

// Post creates a post published at the given UTC date.
func (f *Fixtures) Post(title, slug, status string, publish time.Time, tags ...model.Tag) model.Post {
	f.t.Helper()

	ctx := context.Background()
	p, err := f.repo.CreatePost(ctx, store.CreatePostParams{
		Title:    title,
		Slug:     slug,
		AuthorID: f.author.ID,
		Body:     "Body of " + title,
		Publish:  publish,
		Status:   status,
	})
	if err != nil {
		f.t.Fatalf("CreatePost(%s): %v", slug, err)
	}

	for _, tag := range tags {
		if err := f.repo.AddTagToPost(ctx, p.ID, tag.ID); err != nil {
			f.t.Fatalf("AddTagToPost(%s, %s): %v", slug, tag.Slug, err)
		}
	}
	if len(tags) > 0 {
		p, err = f.repo.GetPostByID(ctx, p.ID)
		if err != nil {
			f.t.Fatalf("GetPostByID: %v", err)
		}
	}
	return p
}

// Published creates a published post.
func (f *Fixtures) Published(title, slug string, publish time.Time, tags ...model.Tag) model.Post {
	f.t.Helper()
	return f.Post(title, slug, model.PostStatusPublished, publish, tags...)
}

// Tag creates a tag named after its slug.
func (f *Fixtures) Tag(slug string) model.Tag {
	f.t.Helper()

	tag, err := f.repo.CreateTag(context.Background(), store.CreateTagParams{Name: slug, Slug: slug})
	if err != nil {
		f.t.Fatalf("CreateTag(%s): %v", slug, err)
	}
	return tag
}

// Day returns midday UTC of the date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

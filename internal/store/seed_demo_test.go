// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/olegiv/oblog/internal/auth"
)

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	admin, err := Seed(ctx, q)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !admin.IsAdmin() {
		t.Errorf("admin.Role = %q, want admin", admin.Role)
	}
	ok, err := auth.CheckPassword(DefaultAdminPassword, admin.PasswordHash)
	if err != nil || !ok {
		t.Errorf("CheckPassword = %v, %v", ok, err)
	}

	again, err := Seed(ctx, q)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if again.ID != admin.ID {
		t.Errorf("second Seed created a new admin: %d != %d", again.ID, admin.ID)
	}
}

func TestSeedDemo(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if err := SeedDemo(ctx, q); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	n, err := q.CountPublishedPosts(ctx)
	if err != nil {
		t.Fatalf("CountPublishedPosts: %v", err)
	}
	if n != 4 {
		t.Errorf("published demo posts = %d, want 4", n)
	}

	var drafts int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE status = 'draft'`).Scan(&drafts); err != nil {
		t.Fatalf("counting drafts: %v", err)
	}
	if drafts != 1 {
		t.Errorf("draft demo posts = %d, want 1", drafts)
	}

	tag, err := q.GetTagBySlug(ctx, "web-development")
	if err != nil {
		t.Fatalf("GetTagBySlug: %v", err)
	}
	tagged, err := q.CountPublishedPostsByTag(ctx, tag.ID)
	if err != nil || tagged != 2 {
		t.Errorf("posts tagged web-development = %d, %v; want 2", tagged, err)
	}

	posts, err := q.ListAllPublishedPosts(ctx)
	if err != nil {
		t.Fatalf("ListAllPublishedPosts: %v", err)
	}
	var tutorialID int64
	for _, p := range posts {
		if p.Slug == "django-tutorial" {
			tutorialID = p.ID
		}
	}
	if tutorialID == 0 {
		t.Fatal("django-tutorial not seeded")
	}
	comments, err := q.ListActiveComments(ctx, tutorialID)
	if err != nil {
		t.Fatalf("ListActiveComments: %v", err)
	}
	if len(comments) != 1 || comments[0].Name != "Anna" {
		t.Errorf("active comments = %+v, want only Anna", comments)
	}

	// Seeding twice does not duplicate content.
	if err := SeedDemo(ctx, q); err != nil {
		t.Fatalf("second SeedDemo: %v", err)
	}
	n2, _ := q.CountPublishedPosts(ctx)
	if n2 != n {
		t.Errorf("published posts after second seed = %d, want %d", n2, n)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/util"
)

type demoPost struct {
	Title    string
	Body     string
	Status   string
	TagSlugs []string
	Comments []demoComment
}

type demoComment struct {
	Name   string
	Email  string
	Body   string
	Hidden bool
}

var demoTags = []string{"Go", "Django", "Databases", "Search", "Web Development"}

// SeedDemo creates demo tags, posts and comments owned by the default admin.
// It is a no-op when published posts already exist.
func SeedDemo(ctx context.Context, repo Repository) error {
	slog.Info("seeding demo content")

	admin, err := Seed(ctx, repo)
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	count, err := repo.CountPublishedPosts(ctx)
	if err != nil {
		return fmt.Errorf("counting posts: %w", err)
	}
	if count > 0 {
		slog.Info("posts already exist, skipping demo content")
		return nil
	}

	tagIDs, err := seedDemoTags(ctx, repo)
	if err != nil {
		return fmt.Errorf("seeding demo tags: %w", err)
	}

	if err := seedDemoPosts(ctx, repo, admin.ID, tagIDs); err != nil {
		return fmt.Errorf("seeding demo posts: %w", err)
	}

	return nil
}

func seedDemoTags(ctx context.Context, repo Repository) (map[string]int64, error) {
	ids := make(map[string]int64, len(demoTags))
	for _, name := range demoTags {
		slug := util.Slugify(name)

		tag, err := repo.GetTagBySlug(ctx, slug)
		if errors.Is(err, ErrNotFound) {
			tag, err = repo.CreateTag(ctx, CreateTagParams{Name: name, Slug: slug})
		}
		if err != nil {
			return nil, fmt.Errorf("creating tag %s: %w", slug, err)
		}
		ids[slug] = tag.ID
	}

	slog.Info("seeded demo tags", "count", len(ids))
	return ids, nil
}

func seedDemoPosts(ctx context.Context, repo Repository, authorID int64, tagIDs map[string]int64) error {
	posts := getDemoPosts()
	now := time.Now()

	for i, dp := range posts {
		created, err := repo.CreatePost(ctx, CreatePostParams{
			Title:    dp.Title,
			Slug:     util.Slugify(dp.Title),
			AuthorID: authorID,
			Body:     dp.Body,
			Publish:  now.Add(-time.Duration(len(posts)-i) * 24 * time.Hour),
			Status:   dp.Status,
		})
		if err != nil {
			return fmt.Errorf("creating post %q: %w", dp.Title, err)
		}

		for _, slug := range dp.TagSlugs {
			if tagID, ok := tagIDs[slug]; ok {
				if err := repo.AddTagToPost(ctx, created.ID, tagID); err != nil {
					slog.Warn("failed to add tag to post", "post", created.Slug, "tag", slug, "error", err)
				}
			}
		}

		for _, dc := range dp.Comments {
			c, err := repo.CreateComment(ctx, CreateCommentParams{
				PostID: created.ID,
				Name:   dc.Name,
				Email:  dc.Email,
				Body:   dc.Body,
			})
			if err != nil {
				return fmt.Errorf("creating comment on %q: %w", dp.Title, err)
			}
			if dc.Hidden {
				if err := repo.SetCommentActive(ctx, c.ID, false); err != nil {
					return err
				}
			}
		}
	}

	slog.Info("seeded demo posts", "count", len(posts))
	return nil
}

func getDemoPosts() []demoPost {
	return []demoPost{
		{
			Title:    "Django tutorial",
			Status:   model.PostStatusPublished,
			TagSlugs: []string{"django", "web-development"},
			Body: "A short walk through models, views and templates.\n\n" +
				"We build a small blog with *dated slugs*, tags and comments.",
			Comments: []demoComment{
				{Name: "Anna", Email: "anna@example.com", Body: "Very helpful, thanks!"},
				{Name: "Spam Bot", Email: "bot@example.com", Body: "Buy now", Hidden: true},
			},
		},
		{
			Title:    "Go for web developers",
			Status:   model.PostStatusPublished,
			TagSlugs: []string{"go", "web-development"},
			Body: "Go ships an HTTP server in the standard library.\n\n" +
				"Routers such as chi add URL parameters and middleware on top of it.",
		},
		{
			Title:    "Trigram search in PostgreSQL",
			Status:   model.PostStatusPublished,
			TagSlugs: []string{"databases", "search"},
			Body: "The `pg_trgm` extension compares strings by the three-letter sequences they share.\n\n" +
				"It tolerates typos that full-text search would miss.",
		},
		{
			Title:    "Full-text search with weights",
			Status:   model.PostStatusPublished,
			TagSlugs: []string{"databases", "search", "django"},
			Body: "Titles usually matter more than bodies. Weighting the title **A** and the body **B** " +
				"ranks posts that mention the query in the title first.",
		},
		{
			Title:    "Draft: things to write about",
			Status:   model.PostStatusDraft,
			TagSlugs: []string{"go"},
			Body:     "Not ready yet.",
		},
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store persists posts, comments, tags and authors. The SQLite
// implementation lives here; internal/store/postgres implements the same
// Repository on PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/oblog/internal/model"
)

var (
	// ErrNotFound is returned when the addressed row does not exist or is not
	// visible through the published-post view.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateSlug is returned when a post slug is already used on the
	// same publish date, or a tag slug is already taken.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrInvalidSlug is returned when a slug could not be routed.
	ErrInvalidSlug = errors.New("invalid slug")
)

// Repository is the storage contract of the blog. Every Published* and
// related/search method only ever returns posts with status published.
type Repository interface {
	ListPublishedPosts(ctx context.Context, limit, offset int) ([]model.Post, error)
	CountPublishedPosts(ctx context.Context) (int64, error)
	ListPublishedPostsByTag(ctx context.Context, tagID int64, limit, offset int) ([]model.Post, error)
	CountPublishedPostsByTag(ctx context.Context, tagID int64) (int64, error)
	GetPublishedPostByDate(ctx context.Context, slug string, date model.Date) (model.Post, error)
	GetPublishedPostByID(ctx context.Context, id int64) (model.Post, error)
	ListAllPublishedPosts(ctx context.Context) ([]model.Post, error)
	ListRelatedPosts(ctx context.Context, postID int64, limit int) ([]model.RelatedPost, error)
	SearchPublishedPosts(ctx context.Context, arg SearchParams) ([]model.SearchResult, error)

	GetTagBySlug(ctx context.Context, slug string) (model.Tag, error)
	ListTagsForPost(ctx context.Context, postID int64) ([]model.Tag, error)
	CreateTag(ctx context.Context, arg CreateTagParams) (model.Tag, error)
	AddTagToPost(ctx context.Context, postID, tagID int64) error

	ListActiveComments(ctx context.Context, postID int64) ([]model.Comment, error)
	CreateComment(ctx context.Context, arg CreateCommentParams) (model.Comment, error)
	SetCommentActive(ctx context.Context, id int64, active bool) error

	CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	GetPostByID(ctx context.Context, id int64) (model.Post, error)
	CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error)
	UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error)

	Ping(ctx context.Context) error
}

// CreateUserParams holds the fields of a new author.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Name         string
}

// CreatePostParams holds the fields of a new post. A zero Publish means now;
// an empty Status means draft.
type CreatePostParams struct {
	Title    string
	Slug     string
	AuthorID int64
	Body     string
	Publish  time.Time
	Status   string
}

// UpdatePostParams holds the mutable fields of a post.
type UpdatePostParams struct {
	ID      int64
	Title   string
	Slug    string
	Body    string
	Publish time.Time
	Status  string
}

// CreateTagParams holds the fields of a new tag.
type CreateTagParams struct {
	Name string
	Slug string
}

// CreateCommentParams holds the user-settable fields of a comment and the
// post it is attached to. New comments are always active.
type CreateCommentParams struct {
	PostID int64
	Name   string
	Email  string
	Body   string
}

// SearchParams holds search parameters.
type SearchParams struct {
	Query string
	// Language is the text-search configuration (PostgreSQL only).
	Language string
	// Threshold is the trigram similarity a title must exceed.
	Threshold float64
	// Limit caps the number of results. Zero or less returns every match.
	Limit int
}

// Defaults applies the post defaults shared by every backend.
func (p CreatePostParams) Defaults(now time.Time) CreatePostParams {
	if p.Publish.IsZero() {
		p.Publish = now
	}
	if p.Status == "" {
		p.Status = model.PostStatusDraft
	}
	return p
}

// CheckSlug returns ErrInvalidSlug when slug does not match model.SlugPattern.
func CheckSlug(slug string) error {
	if !model.IsValidSlug(slug) {
		return fmt.Errorf("%q: %w", slug, ErrInvalidSlug)
	}
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Field limits shared by the storage layer and the forms.
const (
	PostTitleMaxLength = 250
	PostSlugMaxLength  = 250
)

// Post represents a blog article.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Body        string    `json:"body"`
	Publish     time.Time `json:"publish"`
	PublishDate Date      `json:"publish_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Tags        []Tag     `json:"tags,omitempty"`
}

// IsPublished returns true if the post is published.
func (p Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsDraft returns true if the post is a draft.
func (p Post) IsDraft() bool {
	return p.Status == PostStatusDraft
}

// URL returns the canonical path of the post.
func (p Post) URL() string {
	return PostDetailPath(p.PublishDate, p.Slug)
}

// ShareURL returns the path of the share form for the post.
func (p Post) ShareURL() string {
	return PostSharePath(p.ID)
}

// ValidStatus reports whether s is a known post status.
func ValidStatus(s string) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// RelatedPost is a published post ranked by the number of tags it shares
// with another post.
type RelatedPost struct {
	Post
	SharedTags int64 `json:"shared_tags"`
}

// SearchResult is a published post matched by a search query.
type SearchResult struct {
	Post
	Similarity float64 `json:"similarity"`
	Rank       float64 `json:"rank"`
}

// Date is a calendar date in the site time zone. Posts are addressed by
// the date part of their publish timestamp.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate validates y/m/d and returns the date. Overflowing values such as
// February 30 are rejected instead of normalized.
func NewDate(y, m, d int) (Date, error) {
	if m < 1 || m > 12 || d < 1 || d > 31 || y < 1 || y > 9999 {
		return Date{}, fmt.Errorf("invalid date %d-%d-%d", y, m, d)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return Date{}, fmt.Errorf("invalid date %d-%d-%d", y, m, d)
	}
	return Date{Year: y, Month: time.Month(m), Day: d}, nil
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String formats the date as YYYY-MM-DD, the form it is stored in.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestPostStatus(t *testing.T) {
	p := &Post{Status: PostStatusPublished}
	if !p.IsPublished() {
		t.Error("IsPublished() = false, want true")
	}
	if p.IsDraft() {
		t.Error("IsDraft() = true, want false")
	}

	p.Status = PostStatusDraft
	if p.IsPublished() {
		t.Error("IsPublished() = true for draft")
	}

	for _, s := range []string{"draft", "published"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("archived") {
		t.Error("ValidStatus(archived) = true")
	}
}

func TestPostURL(t *testing.T) {
	p := &Post{
		ID:          7,
		Slug:        "c",
		PublishDate: Date{Year: 2024, Month: time.June, Day: 3},
	}

	if got, want := p.URL(), "/blog/2024/6/3/c/"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
	if got, want := p.ShareURL(), "/blog/7/share"; got != want {
		t.Errorf("ShareURL() = %q, want %q", got, want)
	}
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 6, 3, 23, 30, 0, 0, time.UTC)

	if got := DateOf(ts, nil); got.String() != "2024-06-03" {
		t.Errorf("DateOf(UTC) = %s, want 2024-06-03", got)
	}

	loc := time.FixedZone("UTC+3", 3*60*60)
	if got := DateOf(ts, loc); got.String() != "2024-06-04" {
		t.Errorf("DateOf(UTC+3) = %s, want 2024-06-04", got)
	}
}

func TestNewDate(t *testing.T) {
	tests := []struct {
		y, m, d int
		wantErr bool
	}{
		{2024, 6, 3, false},
		{2024, 2, 29, false},
		{2023, 2, 29, true},
		{2024, 13, 1, true},
		{2024, 0, 1, true},
		{2024, 4, 31, true},
		{0, 1, 1, true},
		{2024, 1, 0, true},
	}

	for _, tt := range tests {
		_, err := NewDate(tt.y, tt.m, tt.d)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewDate(%d, %d, %d) error = %v, wantErr %v", tt.y, tt.m, tt.d, err, tt.wantErr)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-03")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d != (Date{Year: 2024, Month: time.June, Day: 3}) {
		t.Errorf("ParseDate = %+v", d)
	}
	if d.String() != "2024-06-03" {
		t.Errorf("String() = %q", d.String())
	}

	if _, err := ParseDate("03/06/2024"); err == nil {
		t.Error("expected error for malformed date")
	}
	if !(Date{}).IsZero() {
		t.Error("zero Date should report IsZero")
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"hello-world", true},
		{"snake_case", true},
		{"post42", true},
		{"", false},
		{"Upper", false},
		{"with space", false},
		{"dot.slug", false},
		{"слаг", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"list", PostListPath(), "/blog/"},
		{"tag", TagListPath("go"), "/blog/tag/go/"},
		{"tag method", Tag{Slug: "web-dev"}.URL(), "/blog/tag/web-dev/"},
		{"feed", FeedPath(), "/blog/feed/"},
		{"search", SearchPath(), "/blog/search/"},
		{"absolute", AbsoluteURL("https", "example.com", "/blog/2024/6/3/c/"), "https://example.com/blog/2024/6/3/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

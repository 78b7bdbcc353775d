// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"net/url"
	"regexp"
)

// BlogPrefix is the URL prefix every blog route is mounted under.
const BlogPrefix = "/blog"

// SlugPattern is the set of characters accepted in post and tag slugs.
const SlugPattern = `[a-z0-9_-]+`

var slugRegex = regexp.MustCompile(`^` + SlugPattern + `$`)

// IsValidSlug reports whether s matches the slug format used in URLs.
func IsValidSlug(s string) bool {
	return s != "" && len(s) <= PostSlugMaxLength && slugRegex.MatchString(s)
}

// PostListPath returns the path of the post listing.
func PostListPath() string {
	return BlogPrefix + "/"
}

// TagListPath returns the path of the post listing filtered by a tag.
func TagListPath(tagSlug string) string {
	return BlogPrefix + "/tag/" + url.PathEscape(tagSlug) + "/"
}

// PostDetailPath returns the canonical path of a post. Month and day are
// not zero padded.
func PostDetailPath(d Date, slug string) string {
	return fmt.Sprintf("%s/%d/%d/%d/%s/", BlogPrefix, d.Year, int(d.Month), d.Day, slug)
}

// PostSharePath returns the path of the share form of a post.
func PostSharePath(id int64) string {
	return fmt.Sprintf("%s/%d/share", BlogPrefix, id)
}

// FeedPath returns the path of the syndication feed.
func FeedPath() string {
	return BlogPrefix + "/feed/"
}

// SearchPath returns the path of the search page.
func SearchPath() string {
	return BlogPrefix + "/search/"
}

// AbsoluteURL joins a scheme and host with a path.
func AbsoluteURL(scheme, host, path string) string {
	u := url.URL{Scheme: scheme, Host: host, Path: path}
	return u.String()
}

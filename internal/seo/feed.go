// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"

	"github.com/gorilla/feeds"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/util"
)

// Channel fields of the latest posts feed.
const (
	FeedTitle       = "Мой блог"
	FeedDescription = "Новый пост на моем блоге"
	FeedItems       = 5
	FeedDescWords   = 30
)

// BuildFeed returns the latest posts feed. posts must be newest first;
// only the first FeedItems are used.
func BuildFeed(siteURL string, posts []model.Post) *feeds.Feed {
	siteURL = strings.TrimSuffix(siteURL, "/")

	feed := &feeds.Feed{
		Title:       FeedTitle,
		Link:        &feeds.Link{Href: siteURL + model.PostListPath()},
		Description: FeedDescription,
	}
	if len(posts) > FeedItems {
		posts = posts[:FeedItems]
	}
	if len(posts) > 0 {
		feed.Updated = posts[0].Publish
	}

	feed.Items = make([]*feeds.Item, 0, len(posts))
	for _, p := range posts {
		link := siteURL + p.URL()
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: util.TruncateWords(p.Body, FeedDescWords),
			Id:          link,
			Created:     p.Publish,
		})
	}
	return feed
}

// GenerateRSS renders the latest posts feed as RSS 2.0.
func GenerateRSS(siteURL string, posts []model.Post) (string, error) {
	return BuildFeed(siteURL, posts).ToRss()
}

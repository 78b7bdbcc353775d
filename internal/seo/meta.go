// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/util"
)

// SiteName is the blog title used in page titles.
const SiteName = FeedTitle

const descriptionWords = 30

// Meta holds the head meta data of a page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OGType      string
	Robots      string
	JSONLD      template.JS
}

// ListMeta describes a listing page, optionally filtered by tag.
func ListMeta(siteURL string, tag *model.Tag) Meta {
	siteURL = strings.TrimSuffix(siteURL, "/")
	m := Meta{
		Title:       SiteName,
		Description: FeedDescription,
		Canonical:   siteURL + model.PostListPath(),
		OGType:      "website",
		Robots:      "index,follow",
	}
	if tag != nil {
		m.Title = tag.Name + " | " + SiteName
		m.Canonical = siteURL + tag.URL()
	}
	return m
}

// PostMeta describes the detail page of a post.
func PostMeta(siteURL string, p model.Post) Meta {
	siteURL = strings.TrimSuffix(siteURL, "/")
	return Meta{
		Title:       p.Title + " | " + SiteName,
		Description: util.TruncateWords(p.Body, descriptionWords),
		Canonical:   siteURL + p.URL(),
		OGType:      "article",
		Robots:      "index,follow",
		JSONLD:      ArticleSchema(siteURL, p),
	}
}

// NoIndexMeta describes pages crawlers should not index, such as search
// results and share forms.
func NoIndexMeta(title string) Meta {
	return Meta{
		Title:  title + " | " + SiteName,
		OGType: "website",
		Robots: "noindex,follow",
	}
}

type articleSchema struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	DatePublished    string        `json:"datePublished,omitempty"`
	DateModified     string        `json:"dateModified,omitempty"`
	Author           *personSchema `json:"author,omitempty"`
	Keywords         []string      `json:"keywords,omitempty"`
	MainEntityOfPage string        `json:"mainEntityOfPage"`
}

type personSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// ArticleSchema returns JSON-LD Article structured data for a post.
func ArticleSchema(siteURL string, p model.Post) template.JS {
	a := articleSchema{
		Context:          "https://schema.org",
		Type:             "Article",
		Headline:         p.Title,
		MainEntityOfPage: strings.TrimSuffix(siteURL, "/") + p.URL(),
	}
	if !p.Publish.IsZero() {
		a.DatePublished = p.Publish.UTC().Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		a.DateModified = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if p.AuthorName != "" {
		a.Author = &personSchema{Type: "Person", Name: p.AuthorName}
	}
	for _, t := range p.Tags {
		a.Keywords = append(a.Keywords, t.Name)
	}

	data, err := json.Marshal(a)
	if err != nil {
		return ""
	}
	return template.JS(data)
}

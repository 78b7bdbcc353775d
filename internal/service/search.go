// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the blog use cases that sit between handlers and
// the store: searching posts and sharing them by mail.
package service

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/store"
	"github.com/olegiv/oblog/internal/trigram"
)

const excerptLength = 200

// SearchService searches published posts by title similarity, ranked
// together with full-text relevance.
type SearchService struct {
	repo      store.Repository
	language  string
	threshold float64
}

// SearchResult is a matched post with a plain-text excerpt of its body.
type SearchResult struct {
	model.SearchResult
	Excerpt string
}

// NewSearchService creates a SearchService. language names the text search
// configuration used for stemming.
func NewSearchService(repo store.Repository, language string) *SearchService {
	if language == "" {
		language = "english"
	}
	return &SearchService{
		repo:      repo,
		language:  language,
		threshold: trigram.DefaultThreshold,
	}
}

// Search returns published posts whose title is similar to query,
// best matches first. A blank query yields no results.
func (s *SearchService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = normalizeQuery(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	found, err := s.repo.SearchPublishedPosts(ctx, store.SearchParams{
		Query:     query,
		Language:  s.language,
		Threshold: s.threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("searching posts for %q: %w", query, err)
	}

	results := make([]SearchResult, len(found))
	for i, r := range found {
		results[i] = SearchResult{SearchResult: r, Excerpt: generateExcerpt(r.Body, query, excerptLength)}
	}
	return results, nil
}

// normalizeQuery trims the query and collapses inner whitespace.
func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	markdownPattern = regexp.MustCompile("[#*_`>]+")
)

// stripMarkup removes HTML tags and markdown emphasis from s and
// normalizes whitespace.
func stripMarkup(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = markdownPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// generateExcerpt cuts about maxLen characters from body around the first
// occurrence of a query word.
func generateExcerpt(body, query string, maxLen int) string {
	text := []rune(stripMarkup(body))
	if len(text) == 0 {
		return ""
	}

	lower := []rune(strings.ToLower(string(text)))
	first := -1
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if idx := runeIndex(lower, []rune(word)); idx != -1 && (first == -1 || idx < first) {
			first = idx
		}
	}

	start := 0
	if first > maxLen/3 {
		start = first - maxLen/3
	}
	end := min(start+maxLen, len(text))

	excerpt := string(text[start:end])
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(text) {
		excerpt += "..."
	}
	return excerpt
}

func runeIndex(s, sub []rune) int {
	if len(sub) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(sub) <= len(s); i++ {
		for j := range sub {
			if s[i+j] != sub[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

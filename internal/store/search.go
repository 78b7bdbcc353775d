// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/olegiv/oblog/internal/model"
)

var ftsUnsafe = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)

// ftsQuery turns free text into an FTS5 expression: every word becomes a
// quoted prefix term and the terms are OR-ed. It returns "" when nothing
// searchable is left.
func ftsQuery(query string) string {
	words := strings.Fields(ftsUnsafe.ReplaceAllString(query, " "))
	if len(words) == 0 {
		return ""
	}

	terms := make([]string, 0, len(words))
	for _, w := range words {
		terms = append(terms, `"`+w+`"*`)
	}
	return strings.Join(terms, " OR ")
}

// SearchPublishedPosts returns published posts whose title is trigram-similar
// to the query above the threshold, most similar first. The bm25 rank over
// title (weight 1.0) and body (weight 0.4) breaks ties.
//
// bm25() and MATCH are FTS5 specific, so the statement is assembled here
// rather than kept as a fixed query.
func (q *Queries) SearchPublishedPosts(ctx context.Context, arg SearchParams) ([]model.SearchResult, error) {
	if strings.TrimSpace(arg.Query) == "" {
		return nil, nil
	}

	rankExpr, rankJoin := "0.0", ""
	args := []any{arg.Query}
	if match := ftsQuery(arg.Query); match != "" {
		rankExpr = "COALESCE(f.score, 0.0)"
		rankJoin = `LEFT JOIN (
			SELECT rowid AS post_id, -bm25(posts_fts, 1.0, 0.4) AS score
			FROM posts_fts WHERE posts_fts MATCH ?
		) f ON f.post_id = p.id`
		args = append(args, match)
	}
	limit := arg.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, arg.Query, arg.Threshold, limit)

	//goland:noinspection SqlResolve
	rows, err := q.db.QueryContext(ctx, `SELECT `+postColumns+`,
			similarity(p.title, ?) AS sim,
			`+rankExpr+` AS fts_rank
		`+postFrom+`
		`+rankJoin+`
		WHERE p.status = 'published' AND similarity(p.title, ?) > ?
		ORDER BY sim DESC, fts_rank DESC, p.publish DESC
		LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.SearchResult
	for rows.Next() {
		var r model.SearchResult
		p, err := scanPost(rows, &r.Similarity, &r.Rank)
		if err != nil {
			return nil, err
		}
		r.Post = p
		results = append(results, r)
	}
	return results, rows.Err()
}

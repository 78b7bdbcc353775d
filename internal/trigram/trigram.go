// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package trigram computes trigram similarity the way PostgreSQL's pg_trgm
// extension does, so the SQLite store ranks search results like the
// PostgreSQL one.
package trigram

import (
	"strings"
	"unicode"
)

// DefaultThreshold is the similarity a title must exceed to match a search query.
const DefaultThreshold = 0.3

// Set is a set of trigrams.
type Set map[string]struct{}

// Extract returns the trigrams of s. The text is lower-cased and split into
// words of letters and digits; every word is padded with two spaces in front
// and one behind before the three-character windows are taken.
func Extract(s string) Set {
	set := make(Set)
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, w := range words {
		padded := []rune("  " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}

	return set
}

// Similarity returns the number of shared trigrams divided by the number of
// distinct trigrams in both strings. The result is in [0, 1]; it is 0 when
// either string has no trigrams.
func Similarity(a, b string) float64 {
	ta, tb := Extract(a), Extract(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	common := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			common++
		}
	}

	return float64(common) / float64(len(ta)+len(tb)-common)
}

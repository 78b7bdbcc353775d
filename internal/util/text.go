// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "strings"

// Ellipsis marks truncated text.
const Ellipsis = " …"

// TruncateWords keeps the first n whitespace-separated words of s. When
// words were dropped the result ends with Ellipsis.
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	if n <= 0 {
		return strings.TrimSpace(Ellipsis)
	}
	return strings.Join(words[:n], " ") + Ellipsis
}

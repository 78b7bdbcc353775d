// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"

	"github.com/olegiv/oblog/internal/model"
)

// GenerateRobots returns robots.txt content. Search results and share
// forms are kept out of indexes; everything else is allowed. A non-empty
// siteURL adds the sitemap reference.
func GenerateRobots(siteURL string, disallowAll bool) string {
	var sb strings.Builder

	sb.WriteString("User-agent: *\n")
	if disallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	for _, path := range []string{model.SearchPath(), model.BlogPrefix + "/*/share"} {
		sb.WriteString("Disallow: ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}
	sb.WriteString("Allow: /\n")

	if siteURL != "" {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimSuffix(siteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}
	return sb.String()
}

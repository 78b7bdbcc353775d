// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// AppendSlash redirects GET and HEAD requests whose path has no route but
// would match one with a trailing slash added (HTTP 301). The query string
// is kept.
func AppendSlash(routes chi.Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if (r.Method != http.MethodGet && r.Method != http.MethodHead) ||
				strings.HasSuffix(path, "/") ||
				routes.Match(chi.NewRouteContext(), r.Method, path) ||
				!routes.Match(chi.NewRouteContext(), r.Method, path+"/") {
				next.ServeHTTP(w, r)
				return
			}

			target := path + "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
		})
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "github.com/olegiv/oblog/internal/model"

// Route pattern constants for chi router registration. Blog routes are
// relative to model.BlogPrefix.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteTagList is the listing filtered by tag.
	RouteTagList = "/tag/{tag_slug:" + model.SlugPattern + "}/"
	// RoutePostDetail is the canonical post path.
	RoutePostDetail = "/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{post:" + model.SlugPattern + "}/"
	// RoutePostShare is the share form of a post.
	RoutePostShare = "/{post_id:[0-9]+}/share"
	// RouteFeed is the RSS feed.
	RouteFeed = "/feed/"
	// RouteSearch is the search page.
	RouteSearch = "/search/"

	// RouteSitemap is the project-level sitemap.
	RouteSitemap = "/sitemap.xml"
	// RouteRobots is the robots.txt path.
	RouteRobots = "/robots.txt"
	// RouteStatic is the static assets prefix.
	RouteStatic = "/static"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe.
	RouteHealthReady = "/health/ready"
)

// URL parameter names.
const (
	paramTagSlug = "tag_slug"
	paramYear    = "year"
	paramMonth   = "month"
	paramDay     = "day"
	paramPost    = "post"
	paramPostID  = "post_id"
)

// PostsPerPage is the page size of the post listings.
const PostsPerPage = 3

// Limits of the secondary lists on blog pages.
const (
	relatedPostsLimit = 4
	feedPostsLimit    = 5
)

// Template names.
const (
	templateList     = "blog/list"
	templateDetail   = "blog/detail"
	templateShare    = "blog/share"
	templateSearch   = "blog/search"
	templateNotFound = "errors/404"
	templateError    = "errors/500"
)

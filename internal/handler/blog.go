// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the blog.
package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog/internal/form"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/seo"
	"github.com/olegiv/oblog/internal/service"
	"github.com/olegiv/oblog/internal/store"
)

// BlogHandler serves the public blog pages. Every post it shows comes from
// the published-post methods of the repository.
type BlogHandler struct {
	responder
	repo   store.Repository
	search *service.SearchService
	share  *service.ShareService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(
	repo store.Repository,
	renderer *render.Renderer,
	search *service.SearchService,
	share *service.ShareService,
	logger *slog.Logger,
) *BlogHandler {
	return &BlogHandler{
		responder: responder{renderer: renderer, logger: logger},
		repo:      repo,
		search:    search,
		share:     share,
	}
}

// Routes returns the blog router, to be mounted at model.BlogPrefix.
func (h *BlogHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get(RouteRoot, h.List)
	r.Get(RouteTagList, h.List)
	r.Get(RoutePostDetail, h.Detail)
	r.Post(RoutePostDetail, h.Detail)
	r.Get(RoutePostShare, h.Share)
	r.Post(RoutePostShare, h.Share)
	r.Get(RouteFeed, h.Feed)
	r.Get(RouteSearch, h.Search)
	r.NotFound(h.NotFound)
	return r
}

// ListData is the template data of the post listing.
type ListData struct {
	Tag   *model.Tag
	Posts []model.Post
	Page  Page
	// PageParam is the raw page query parameter.
	PageParam string
}

// DetailData is the template data of the post page.
type DetailData struct {
	Post       model.Post
	Comments   []model.Comment
	NewComment *model.Comment
	Related    []model.RelatedPost
	Form       form.CommentForm
	Errors     form.Errors
}

// ShareData is the template data of the share page.
type ShareData struct {
	Post   model.Post
	Form   form.ShareForm
	Errors form.Errors
	Sent   bool
}

// SearchData is the template data of the search page.
type SearchData struct {
	Form     form.SearchForm
	Errors   form.Errors
	Query    string
	Searched bool
	Results  []service.SearchResult
}

// List handles GET / and GET /tag/{tag_slug}/.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var tag *model.Tag
	if slug := chi.URLParam(r, paramTagSlug); slug != "" {
		t, ok := requireEntity(h.responder, w, r, "tag", slug, func() (model.Tag, error) {
			return h.repo.GetTagBySlug(ctx, slug)
		})
		if !ok {
			return
		}
		tag = &t
	}

	var (
		total int64
		err   error
	)
	baseURL := model.PostListPath()
	if tag != nil {
		baseURL = tag.URL()
		total, err = h.repo.CountPublishedPostsByTag(ctx, tag.ID)
	} else {
		total, err = h.repo.CountPublishedPosts(ctx)
	}
	if err != nil {
		h.serverError(w, r, "failed to count posts", err)
		return
	}

	page := NewPage(ParsePageParam(r), total, PostsPerPage, baseURL)

	var posts []model.Post
	if tag != nil {
		posts, err = h.repo.ListPublishedPostsByTag(ctx, tag.ID, page.PerPage, page.Offset())
	} else {
		posts, err = h.repo.ListPublishedPosts(ctx, page.PerPage, page.Offset())
	}
	if err != nil {
		h.serverError(w, r, "failed to list posts", err, "page", page.Number)
		return
	}

	h.render(w, r, templateList, seo.ListMeta(siteURL(r), tag), ListData{
		Tag:       tag,
		Posts:     posts,
		Page:      page,
		PageParam: r.URL.Query().Get("page"),
	})
}

// Detail handles GET and POST /{year}/{month}/{day}/{post}/. A valid POST
// adds an active comment to the post.
func (h *BlogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, paramPost)
	date, err := dateParams(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, ok := requireEntity(h.responder, w, r, "post", slug, func() (model.Post, error) {
		return h.repo.GetPublishedPostByDate(ctx, slug, date)
	})
	if !ok {
		return
	}

	data := DetailData{Post: post}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		data.Form, data.Errors = form.ParseComment(r.PostForm)
		if data.Errors.Valid() {
			comment, err := h.repo.CreateComment(ctx, store.CreateCommentParams{
				PostID: post.ID,
				Name:   data.Form.Name,
				Email:  data.Form.Email,
				Body:   data.Form.Body,
			})
			if err != nil {
				h.serverError(w, r, "failed to create comment", err, "post_id", post.ID)
				return
			}
			data.NewComment = &comment
			h.logger.InfoContext(ctx, "comment added", "post_id", post.ID, "comment_id", comment.ID)
		}
	}

	data.Comments, err = h.repo.ListActiveComments(ctx, post.ID)
	if err != nil {
		h.serverError(w, r, "failed to list comments", err, "post_id", post.ID)
		return
	}

	data.Related, err = h.repo.ListRelatedPosts(ctx, post.ID, relatedPostsLimit)
	if err != nil {
		h.serverError(w, r, "failed to list related posts", err, "post_id", post.ID)
		return
	}

	h.render(w, r, templateDetail, seo.PostMeta(siteURL(r), post), data)
}

// Share handles GET and POST /{post_id}/share. A valid POST mails a link to
// the post to the given recipient.
func (h *BlogHandler) Share(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, paramPostID), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, ok := requireEntity(h.responder, w, r, "post", id, func() (model.Post, error) {
		return h.repo.GetPublishedPostByID(ctx, id)
	})
	if !ok {
		return
	}

	data := ShareData{Post: post}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		data.Form, data.Errors = form.ParseShare(r.PostForm)
		if data.Errors.Valid() {
			postURL := model.AbsoluteURL(requestScheme(r), r.Host, post.URL())
			if err := h.share.Share(ctx, post, postURL, data.Form); err != nil {
				h.serverError(w, r, "failed to send share mail", err, "post_id", post.ID)
				return
			}
			data.Sent = true
		}
	}

	h.render(w, r, templateShare, seo.NoIndexMeta("Share "+post.Title), data)
}

// Search handles GET /search/. Without a query parameter only the form is
// shown.
func (h *BlogHandler) Search(w http.ResponseWriter, r *http.Request) {
	var data SearchData

	values := r.URL.Query()
	if values.Has("query") {
		data.Form, data.Errors = form.ParseSearch(values)
		if data.Errors.Valid() {
			results, err := h.search.Search(r.Context(), data.Form.Query)
			if err != nil {
				h.serverError(w, r, "failed to search posts", err, "query", data.Form.Query)
				return
			}
			data.Searched = true
			data.Query = data.Form.Query
			data.Results = results
		}
	}

	h.render(w, r, templateSearch, seo.NoIndexMeta("Search"), data)
}

// Feed handles GET /feed/ with an RSS document of the latest posts.
func (h *BlogHandler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.repo.ListPublishedPosts(r.Context(), feedPostsLimit, 0)
	if err != nil {
		h.serverError(w, r, "failed to list feed posts", err)
		return
	}

	rss, err := seo.GenerateRSS(siteURL(r), posts)
	if err != nil {
		h.serverError(w, r, "failed to generate feed", err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = io.WriteString(w, rss)
}

// Sitemap handles GET /sitemap.xml.
func (h *BlogHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := h.repo.ListAllPublishedPosts(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to list sitemap posts", err)
		return
	}

	sitemap, err := seo.GenerateSitemap(siteURL(r), posts)
	if err != nil {
		h.serverError(w, r, "failed to generate sitemap", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(sitemap)
}

// Robots returns the GET /robots.txt handler. disallowAll keeps crawlers
// away from the whole site.
func (h *BlogHandler) Robots(disallowAll bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, seo.GenerateRobots(siteURL(r), disallowAll))
	}
}

// NotFound renders the blog 404 page.
func (h *BlogHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

// dateParams reads the publish date from the URL. Dates that do not exist
// on the calendar are an error.
func dateParams(r *http.Request) (model.Date, error) {
	var parts [3]int
	for i, name := range []string{paramYear, paramMonth, paramDay} {
		n, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			return model.Date{}, err
		}
		parts[i] = n
	}
	return model.NewDate(parts[0], parts[1], parts[2])
}

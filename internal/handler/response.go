// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/seo"
	"github.com/olegiv/oblog/internal/store"
)

// responder writes the HTML pages shared by every blog handler.
type responder struct {
	renderer *render.Renderer
	logger   *slog.Logger
}

// render renders a page with status 200.
func (rs responder) render(w http.ResponseWriter, r *http.Request, name string, meta seo.Meta, data any) {
	rs.renderStatus(w, r, http.StatusOK, name, meta, data)
}

func (rs responder) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, meta seo.Meta, data any) {
	err := rs.renderer.RenderStatus(w, r, status, name, render.TemplateData{Meta: meta, Data: data})
	if err != nil {
		rs.logger.ErrorContext(r.Context(), "failed to render template", "template", name, "error", err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
	}
}

// notFound renders the 404 page.
func (rs responder) notFound(w http.ResponseWriter, r *http.Request) {
	rs.renderStatus(w, r, http.StatusNotFound, templateNotFound, seo.NoIndexMeta("Page not found"), nil)
}

// serverError logs err and renders the 500 page.
func (rs responder) serverError(w http.ResponseWriter, r *http.Request, logMsg string, err error, args ...any) {
	args = append(args, "error", err)
	rs.logger.ErrorContext(r.Context(), logMsg, args...)
	rs.renderStatus(w, r, http.StatusInternalServerError, templateError, seo.NoIndexMeta("Server error"), nil)
}

// requireEntity fetches an entity using the provided query function.
// store.ErrNotFound renders the 404 page, any other error the 500 page.
// Returns the entity and true if successful, or zero value and false if
// a response has already been written.
//
// Example usage:
//
//	tag, ok := requireEntity(h.responder, w, r, "tag", slug,
//	    func() (model.Tag, error) { return h.repo.GetTagBySlug(ctx, slug) })
func requireEntity[T any](
	rs responder,
	w http.ResponseWriter,
	r *http.Request,
	entityName string,
	key any,
	queryFn func() (T, error),
) (T, bool) {
	var zero T
	entity, err := queryFn()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rs.notFound(w, r)
		} else {
			rs.serverError(w, r, "failed to get "+entityName, err, entityName, key)
		}
		return zero, false
	}
	return entity, true
}

// siteURL returns scheme and host of the request, the base of absolute
// links in mails, feeds and the sitemap.
func siteURL(r *http.Request) string {
	return model.AbsoluteURL(requestScheme(r), r.Host, "")
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog/internal/mail"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/service"
	"github.com/olegiv/oblog/internal/store"
	"github.com/olegiv/oblog/internal/testutil"
	"github.com/olegiv/oblog/web"
)

// testEnv is a blog router over a temporary SQLite database. Share mails
// end up in outbox.
type testEnv struct {
	repo   *store.Queries
	fx     *testutil.Fixtures
	outbox *mail.Outbox
	router chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := testutil.TestRepo(t)
	renderer, err := render.New(render.Config{TemplatesFS: web.TemplatesFS()})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	logger := testutil.TestLoggerSilent()
	outbox := &mail.Outbox{}
	h := NewBlogHandler(
		repo,
		renderer,
		service.NewSearchService(repo, "english"),
		service.NewShareService(outbox, "admin", logger),
		logger,
	)

	r := chi.NewRouter()
	r.Mount(model.BlogPrefix, h.Routes())
	r.Get(RouteSitemap, h.Sitemap)
	r.Get(RouteRobots, h.Robots(false))
	r.NotFound(h.NotFound)

	return &testEnv{
		repo:   repo,
		fx:     testutil.NewFixtures(t, repo),
		outbox: outbox,
		router: r,
	}
}

// get performs a GET request against the router.
func (e *testEnv) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

// post submits form as application/x-www-form-urlencoded.
func (e *testEnv) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// assertStatus checks if the HTTP status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// assertContains checks that body contains every string of want.
func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, s := range want {
		if !strings.Contains(body, s) {
			t.Errorf("body does not contain %q", s)
		}
	}
}

// assertNotContains checks that body contains none of the strings.
func assertNotContains(t *testing.T, body string, unwanted ...string) {
	t.Helper()
	for _, s := range unwanted {
		if strings.Contains(body, s) {
			t.Errorf("body unexpectedly contains %q", s)
		}
	}
}

// assertOrder checks that the strings appear in body in the given order.
func assertOrder(t *testing.T, body string, ordered ...string) {
	t.Helper()
	last := -1
	for _, s := range ordered {
		i := strings.Index(body, s)
		if i < 0 {
			t.Errorf("body does not contain %q", s)
			return
		}
		if i < last {
			t.Errorf("%q appears out of order", s)
		}
		last = i
	}
}

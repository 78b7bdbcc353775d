// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/testutil"
)

// seedListing creates published posts A and C around draft B.
func seedListing(e *testEnv) (a, b, c model.Post) {
	a = e.fx.Published("Post A", "a", testutil.Day(2024, time.June, 1))
	b = e.fx.Post("Post B", "b", model.PostStatusDraft, testutil.Day(2024, time.June, 2))
	c = e.fx.Published("Post C", "c", testutil.Day(2024, time.June, 3))
	return a, b, c
}

func TestList_PublishedOnly(t *testing.T) {
	e := newTestEnv(t)
	seedListing(e)

	w := e.get("/blog/")

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertOrder(t, body, "Post C", "Post A")
	assertNotContains(t, body, "Post B")
	assertContains(t, body, "Page 1 of 1.")
}

func TestList_Pagination(t *testing.T) {
	e := newTestEnv(t)
	for i := 1; i <= 4; i++ {
		e.fx.Published(fmt.Sprintf("Entry %d", i), fmt.Sprintf("entry-%d", i), testutil.Day(2024, time.March, i))
	}

	first := e.get("/blog/")
	assertStatus(t, first.Code, http.StatusOK)
	assertOrder(t, first.Body.String(), "Entry 4", "Entry 3", "Entry 2")
	assertNotContains(t, first.Body.String(), "Entry 1")
	assertContains(t, first.Body.String(), "Page 1 of 2.", `href="/blog/?page=2"`)

	second := e.get("/blog/?page=2")
	assertStatus(t, second.Code, http.StatusOK)
	assertContains(t, second.Body.String(), "Entry 1", "Page 2 of 2.", `href="/blog/?page=1"`)
	assertNotContains(t, second.Body.String(), "Entry 4")

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"beyond last page", "?page=99", second.Body.String()},
		{"beyond int range", "?page=99999999999999999999", second.Body.String()},
		{"below int range", "?page=-99999999999999999999", first.Body.String()},
		{"not an integer", "?page=abc", first.Body.String()},
		{"zero", "?page=0", first.Body.String()},
		{"empty", "?page=", first.Body.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.get("/blog/" + tt.query)
			assertStatus(t, w.Code, http.StatusOK)
			if w.Body.String() != tt.want {
				t.Errorf("page %s differs from the clamped page", tt.query)
			}
		})
	}
}

func TestList_ByTag(t *testing.T) {
	e := newTestEnv(t)
	golang := e.fx.Tag("golang")
	e.fx.Published("Tagged post", "tagged", testutil.Day(2024, time.May, 1), golang)
	e.fx.Published("Plain post", "plain", testutil.Day(2024, time.May, 2))
	e.fx.Post("Tagged draft", "tagged-draft", model.PostStatusDraft, testutil.Day(2024, time.May, 3), golang)

	w := e.get("/blog/tag/golang/")

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body, "Tagged post", `Posts tagged with "golang"`, `href="/blog/tag/golang/"`)
	assertNotContains(t, body, "Plain post", "Tagged draft")
}

func TestList_UnknownTag(t *testing.T) {
	e := newTestEnv(t)

	w := e.get("/blog/tag/missing/")

	assertStatus(t, w.Code, http.StatusNotFound)
	assertContains(t, w.Body.String(), "Page not found")
}

func TestDetail(t *testing.T) {
	e := newTestEnv(t)
	seedListing(e)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"canonical path", "/blog/2024/6/3/c/", http.StatusOK},
		{"wrong day", "/blog/2024/6/4/c/", http.StatusNotFound},
		{"draft", "/blog/2024/6/2/b/", http.StatusNotFound},
		{"impossible date", "/blog/2024/2/30/c/", http.StatusNotFound},
		{"month out of range", "/blog/2024/13/3/c/", http.StatusNotFound},
		{"unknown slug", "/blog/2024/6/3/nope/", http.StatusNotFound},
		{"invalid slug characters", "/blog/2024/6/3/C/", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.get(tt.target)
			assertStatus(t, w.Code, tt.want)
		})
	}

	w := e.get("/blog/2024/6/3/c/")
	assertContains(t, w.Body.String(), "<h1>Post C</h1>", "There are no comments yet.", `href="/blog/3/share"`)
}

func TestDetail_RequiresTrailingSlash(t *testing.T) {
	e := newTestEnv(t)
	seedListing(e)

	w := e.get("/blog/2024/6/3/c")
	assertStatus(t, w.Code, http.StatusNotFound)
}

func TestDetail_AddComment(t *testing.T) {
	e := newTestEnv(t)
	_, _, c := seedListing(e)

	w := e.post("/blog/2024/6/3/c/", url.Values{
		"name":  {"Anna"},
		"email": {"a@x.y"},
		"body":  {"hi"},
	})

	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), "Your comment has been added.", "Comment 1 by Anna")
	assertNotContains(t, w.Body.String(), "Add a new comment")

	comments, err := e.repo.ListActiveComments(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("ListActiveComments: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	got := comments[0]
	if got.PostID != c.ID || !got.Active || got.Name != "Anna" || got.Email != "a@x.y" || got.Body != "hi" {
		t.Errorf("stored comment = %+v", got)
	}

	e.post("/blog/2024/6/3/c/", url.Values{
		"name":  {"Boris"},
		"email": {"b@x.y"},
		"body":  {"second"},
	})

	page := e.get("/blog/2024/6/3/c/")
	assertStatus(t, page.Code, http.StatusOK)
	assertOrder(t, page.Body.String(), "Comment 1 by Anna", "Comment 2 by Boris")
	assertContains(t, page.Body.String(), "2 comments", "Add a new comment")
}

func TestDetail_InactiveCommentsHidden(t *testing.T) {
	e := newTestEnv(t)
	_, _, c := seedListing(e)

	e.post("/blog/2024/6/3/c/", url.Values{"name": {"Spammer"}, "email": {"s@x.y"}, "body": {"buy"}})
	comments, err := e.repo.ListActiveComments(context.Background(), c.ID)
	if err != nil || len(comments) != 1 {
		t.Fatalf("ListActiveComments = %v, %v", comments, err)
	}
	if err := e.repo.SetCommentActive(context.Background(), comments[0].ID, false); err != nil {
		t.Fatalf("SetCommentActive: %v", err)
	}

	w := e.get("/blog/2024/6/3/c/")
	assertNotContains(t, w.Body.String(), "Spammer")
	assertContains(t, w.Body.String(), "0 comments")
}

func TestDetail_InvalidComment(t *testing.T) {
	e := newTestEnv(t)
	_, _, c := seedListing(e)

	w := e.post("/blog/2024/6/3/c/", url.Values{
		"name":  {"Anna"},
		"email": {"not-an-email"},
	})

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body,
		"Enter a valid email address.",
		"This field is required.",
		`value="Anna"`,
		`value="not-an-email"`,
	)
	assertNotContains(t, body, "Your comment has been added.")

	comments, err := e.repo.ListActiveComments(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("ListActiveComments: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("invalid form stored %d comments", len(comments))
	}
}

func TestDetail_RelatedPosts(t *testing.T) {
	e := newTestEnv(t)
	t1, t2, t3 := e.fx.Tag("t1"), e.fx.Tag("t2"), e.fx.Tag("t3")

	e.fx.Published("Second match", "q1", testutil.Day(2024, time.January, 1), t1, t2)
	e.fx.Published("Third match", "q2", testutil.Day(2024, time.February, 1), t1)
	e.fx.Published("First match", "q3", testutil.Day(2024, time.March, 1), t1, t2, t3)
	e.fx.Published("Untagged post", "q4", testutil.Day(2024, time.April, 1))
	e.fx.Post("Draft match", "q5", model.PostStatusDraft, testutil.Day(2024, time.April, 2), t1, t2, t3)
	e.fx.Published("Main post", "p", testutil.Day(2024, time.May, 1), t1, t2, t3)

	w := e.get("/blog/2024/5/1/p/")

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertOrder(t, body, "First match", "Second match", "Third match")
	assertNotContains(t, body, "Untagged post", "Draft match", "There are no similar posts yet.")
}

func TestDetail_NoRelatedPosts(t *testing.T) {
	e := newTestEnv(t)
	seedListing(e)

	w := e.get("/blog/2024/6/1/a/")

	assertContains(t, w.Body.String(), "There are no similar posts yet.")
}

func TestShare_Get(t *testing.T) {
	e := newTestEnv(t)
	p := e.fx.Published("Hello", "hello", testutil.Day(2024, time.June, 3))

	w := e.get(fmt.Sprintf("/blog/%d/share", p.ID))

	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), `Share "Hello" by e-mail`, `name="to"`, "noindex")
	if n := len(e.outbox.Messages()); n != 0 {
		t.Errorf("GET dispatched %d mails", n)
	}
}

func TestShare_Send(t *testing.T) {
	e := newTestEnv(t)
	p := e.fx.Published("Hello", "hello", testutil.Day(2024, time.June, 3))

	w := e.post(fmt.Sprintf("/blog/%d/share", p.ID), url.Values{
		"name":     {"N"},
		"email":    {"n@x.y"},
		"to":       {"t@x.y"},
		"comments": {"good"},
	})

	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), "E-mail successfully sent", "t@x.y")

	msgs := e.outbox.Messages()
	if len(msgs) != 1 {
		t.Fatalf("dispatched %d mails, want 1", len(msgs))
	}
	msg := msgs[0]
	if msg.To != "t@x.y" {
		t.Errorf("To = %q, want t@x.y", msg.To)
	}
	if msg.From != "admin" {
		t.Errorf("From = %q, want admin", msg.From)
	}
	if !strings.HasPrefix(msg.Subject, "N (n@x.y) рекомендует Вам прочитать статью Hello") {
		t.Errorf("Subject = %q", msg.Subject)
	}
	assertContains(t, msg.Body, "http://example.com/blog/2024/6/3/hello/", "good")
}

func TestShare_InvalidForm(t *testing.T) {
	e := newTestEnv(t)
	p := e.fx.Published("Hello", "hello", testutil.Day(2024, time.June, 3))

	w := e.post(fmt.Sprintf("/blog/%d/share", p.ID), url.Values{
		"name":  {strings.Repeat("n", 26)},
		"email": {"n@x.y"},
		"to":    {"nowhere"},
	})

	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(),
		"Ensure this value has at most 25 characters (it has 26).",
		"Enter a valid email address.",
	)
	assertNotContains(t, w.Body.String(), "E-mail successfully sent")
	if n := len(e.outbox.Messages()); n != 0 {
		t.Errorf("invalid form dispatched %d mails", n)
	}
}

func TestShare_MailFailure(t *testing.T) {
	e := newTestEnv(t)
	p := e.fx.Published("Hello", "hello", testutil.Day(2024, time.June, 3))
	e.outbox.Err = errors.New("smtp down")

	w := e.post(fmt.Sprintf("/blog/%d/share", p.ID), url.Values{
		"name":  {"N"},
		"email": {"n@x.y"},
		"to":    {"t@x.y"},
	})

	assertStatus(t, w.Code, http.StatusInternalServerError)
	assertNotContains(t, w.Body.String(), "E-mail successfully sent")
}

func TestShare_NotFound(t *testing.T) {
	e := newTestEnv(t)
	_, b, _ := seedListing(e)

	tests := []struct {
		name   string
		target string
	}{
		{"draft", fmt.Sprintf("/blog/%d/share", b.ID)},
		{"unknown id", "/blog/9999/share"},
		{"id overflow", "/blog/99999999999999999999/share"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertStatus(t, e.get(tt.target).Code, http.StatusNotFound)
		})
	}
}

func TestSearch(t *testing.T) {
	e := newTestEnv(t)
	e.fx.Published("Django tutorial", "django-tutorial", testutil.Day(2024, time.June, 1))
	e.fx.Published("Dance party", "dance-party", testutil.Day(2024, time.June, 2))
	e.fx.Post("Django draft", "django-draft", model.PostStatusDraft, testutil.Day(2024, time.June, 3))

	w := e.get("/blog/search/?query=django")

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body, "Django tutorial", "Found 1 result", `href="/blog/2024/6/1/django-tutorial/"`)
	assertNotContains(t, body, "Dance party", "Django draft")
}

func TestSearch_Form(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name    string
		target  string
		want    []string
		notWant []string
	}{
		{"no query", "/blog/search/", []string{"Search for posts"}, []string{"This field is required.", "Posts containing"}},
		{"empty query", "/blog/search/?query=", []string{"Search for posts", "This field is required."}, []string{"Posts containing"}},
		{"no results", "/blog/search/?query=zzz", []string{`Posts containing "zzz"`, "There are no results for your query."}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.get(tt.target)
			assertStatus(t, w.Code, http.StatusOK)
			assertContains(t, w.Body.String(), tt.want...)
			assertNotContains(t, w.Body.String(), tt.notWant...)
		})
	}
}

func TestFeed(t *testing.T) {
	e := newTestEnv(t)
	for i := 1; i <= 6; i++ {
		e.fx.Published(fmt.Sprintf("Feed post %d", i), fmt.Sprintf("feed-%d", i), testutil.Day(2024, time.July, i))
	}
	e.fx.Post("Feed draft", "feed-draft", model.PostStatusDraft, testutil.Day(2024, time.July, 10))

	w := e.get("/blog/feed/")

	assertStatus(t, w.Code, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := w.Body.String()
	if n := strings.Count(body, "<item>"); n != 5 {
		t.Errorf("feed has %d items, want 5", n)
	}
	assertContains(t, body,
		"<title>Мой блог</title>",
		"<link>http://example.com/blog/</link>",
		"<description>Новый пост на моем блоге</description>",
		"http://example.com/blog/2024/7/6/feed-6/",
	)
	assertOrder(t, body, "Feed post 6", "Feed post 2")
	assertNotContains(t, body, "Feed post 1<", "Feed draft")
}

func TestSitemap(t *testing.T) {
	e := newTestEnv(t)
	_, _, c := seedListing(e)

	w := e.get("/sitemap.xml")

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body,
		"<loc>http://example.com/blog/2024/6/3/c/</loc>",
		"<loc>http://example.com/blog/2024/6/1/a/</loc>",
		"<lastmod>"+c.UpdatedAt.UTC().Format(time.RFC3339)+"</lastmod>",
		"<changefreq>weekly</changefreq>",
		"<priority>0.9</priority>",
	)
	assertNotContains(t, body, "/blog/2024/6/2/b/")
}

func TestRobots(t *testing.T) {
	e := newTestEnv(t)

	w := e.get("/robots.txt")

	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), "Disallow: /blog/search/", "Sitemap: http://example.com/sitemap.xml")
}

func TestNotFound(t *testing.T) {
	e := newTestEnv(t)

	for _, target := range []string{"/blog/nothing/here/", "/elsewhere"} {
		w := e.get(target)
		assertStatus(t, w.Code, http.StatusNotFound)
		assertContains(t, w.Body.String(), "Page not found")
	}
}

func TestSiteURL(t *testing.T) {
	tests := []struct {
		name  string
		proto string
		want  string
	}{
		{"plain", "", "http://blog.test"},
		{"behind tls proxy", "https", "https://blog.test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "http://blog.test/blog/", nil)
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			if got := siteURL(req); got != tt.want {
				t.Errorf("siteURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

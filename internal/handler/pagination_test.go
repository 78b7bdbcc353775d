// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		perPage    int
		want       int
	}{
		{"zero items", 0, 3, 1},
		{"less than one page", 2, 3, 1},
		{"exactly one page", 3, 3, 1},
		{"one item over", 4, 3, 2},
		{"multiple pages", 10, 3, 4},
		{"exact multiple", 9, 3, 3},
		{"zero per page", 10, 0, 1},
		{"negative per page", 10, -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalPages(tt.totalItems, tt.perPage)
			if got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.totalItems, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"valid page", 3, 5, 3},
		{"first page", 1, 5, 1},
		{"last page", 5, 5, 5},
		{"below minimum", 0, 5, 1},
		{"negative page", -1, 5, 1},
		{"above maximum", 10, 5, 5},
		{"way above maximum", 100, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPage(tt.page, tt.totalPages)
			if got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"valid page", "page=3", 3},
		{"first page", "page=1", 1},
		{"no param", "", 1},
		{"empty param", "page=", 1},
		{"invalid param", "page=abc", 1},
		{"zero page", "page=0", 1},
		{"negative page", "page=-1", 1},
		{"large page", "page=999", 999},
		{"overflowing page", "page=99999999999999999999", math.MaxInt},
		{"overflowing negative page", "page=-99999999999999999999", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got := ParsePageParam(req)
			if got != tt.want {
				t.Errorf("ParsePageParam() with query %q = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		total      int64
		wantNumber int
		wantPages  int
		wantOffset int
		wantPrev   bool
		wantNext   bool
	}{
		{"first of three", 1, 7, 1, 3, 0, false, true},
		{"middle", 2, 7, 2, 3, 3, true, true},
		{"last", 3, 7, 3, 3, 6, true, false},
		{"past the end clamps", 9, 7, 3, 3, 6, true, false},
		{"max int clamps", math.MaxInt, 7, 3, 3, 6, true, false},
		{"empty listing", 1, 0, 1, 1, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.page, tt.total, PostsPerPage, "/blog/")
			if p.Number != tt.wantNumber || p.TotalPages != tt.wantPages {
				t.Errorf("page %d of %d, want %d of %d", p.Number, p.TotalPages, tt.wantNumber, tt.wantPages)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", p.Offset(), tt.wantOffset)
			}
			if p.HasPrev() != tt.wantPrev || p.HasNext() != tt.wantNext {
				t.Errorf("HasPrev/HasNext = %v/%v, want %v/%v", p.HasPrev(), p.HasNext(), tt.wantPrev, tt.wantNext)
			}
		})
	}
}

func TestPageURLs(t *testing.T) {
	p := NewPage(2, 9, PostsPerPage, "/blog/tag/go/")

	if got := p.PrevURL(); got != "/blog/tag/go/?page=1" {
		t.Errorf("PrevURL() = %q", got)
	}
	if got := p.NextURL(); got != "/blog/tag/go/?page=3" {
		t.Errorf("NextURL() = %q", got)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Page is one page of a post listing.
type Page struct {
	Number     int
	TotalPages int
	TotalItems int64
	PerPage    int
	BaseURL    string
}

// NewPage clamps page into the range of pages holding totalItems.
func NewPage(page int, totalItems int64, perPage int, baseURL string) Page {
	number, totalPages := NormalizePagination(page, int(totalItems), perPage)
	return Page{
		Number:     number,
		TotalPages: totalPages,
		TotalItems: totalItems,
		PerPage:    perPage,
		BaseURL:    baseURL,
	}
}

// Offset returns the number of items before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// PageURL returns the URL for a specific page number.
func (p Page) PageURL(page int) string {
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// PrevURL returns the URL for the previous page.
func (p Page) PrevURL() string {
	return p.PageURL(p.Number - 1)
}

// NextURL returns the URL for the next page.
func (p Page) NextURL() string {
	return p.PageURL(p.Number + 1)
}

// CalculateTotalPages calculates the number of pages for the given total items and items per page.
func CalculateTotalPages(totalItems, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return totalPages
}

// ClampPage ensures the page number is within the valid range [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// NormalizePagination calculates total pages and clamps the current page to a valid range.
// Returns the normalized page number and total pages.
func NormalizePagination(page, totalItems, perPage int) (normalizedPage, totalPages int) {
	totalPages = CalculateTotalPages(totalItems, perPage)
	normalizedPage = ClampPage(page, totalPages)
	return normalizedPage, totalPages
}

// ParsePageParam parses the "page" query parameter from the request.
// Missing, non-numeric and non-positive values give 1. A positive number
// too large for an int gives math.MaxInt, which ClampPage turns into the
// last page.
func ParsePageParam(r *http.Request) int {
	str := r.URL.Query().Get("page")
	if str == "" {
		return 1
	}
	page, err := strconv.Atoi(str)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(str, "-") {
			return math.MaxInt
		}
		return 1
	}
	if page < 1 {
		return 1
	}
	return page
}

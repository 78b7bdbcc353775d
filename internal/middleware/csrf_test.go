// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDefaultCSRFConfig(t *testing.T) {
	dev := DefaultCSRFConfig(testAuthKey, true, "localhost:8080")
	if len(dev.TrustedOrigins) != 1 || dev.TrustedOrigins[0] != "localhost:8080" {
		t.Errorf("dev TrustedOrigins = %v", dev.TrustedOrigins)
	}

	prod := DefaultCSRFConfig(testAuthKey, false, "localhost:8080")
	if len(prod.TrustedOrigins) != 0 {
		t.Errorf("prod TrustedOrigins = %v, want none", prod.TrustedOrigins)
	}
}

func TestCSRF(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testAuthKey, false, ""))(okHandler())

	tests := []struct {
		name      string
		method    string
		fetchSite string
		want      int
	}{
		{"same origin post", http.MethodPost, "same-origin", http.StatusOK},
		{"cross site post", http.MethodPost, "cross-site", http.StatusForbidden},
		{"cross site get", http.MethodGet, "cross-site", http.StatusOK},
		{"non-browser post", http.MethodPost, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/blog/7/share", nil)
			if tt.fetchSite != "" {
				req.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestCSRF_CustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false, "")
	called := false
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodPost, "/blog/2024/6/3/hello/", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	w := httptest.NewRecorder()
	CSRF(cfg)(okHandler()).ServeHTTP(w, req)

	if !called || w.Code != http.StatusTeapot {
		t.Errorf("custom handler called=%v status=%d", called, w.Code)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
)

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleAdmin, true},
		{"author", false},
		{"", false},
	}

	for _, tt := range tests {
		u := &User{Role: tt.role}
		if got := u.IsAdmin(); got != tt.want {
			t.Errorf("User{Role: %q}.IsAdmin() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestUserDisplayName(t *testing.T) {
	u := &User{Username: "admin"}
	if got := u.DisplayName(); got != "admin" {
		t.Errorf("DisplayName() = %q, want %q", got, "admin")
	}

	u.Name = "Administrator"
	if got := u.DisplayName(); got != "Administrator" {
		t.Errorf("DisplayName() = %q, want %q", got, "Administrator")
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/oblog/internal/auth"
	"github.com/olegiv/oblog/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates the default admin author unless it already exists.
// It works with any Repository implementation.
func Seed(ctx context.Context, repo Repository) (model.User, error) {
	existing, err := repo.GetUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		if !existing.IsAdmin() {
			slog.Warn("existing admin user lacks the admin role", "username", existing.Username, "role", existing.Role)
		}
		if auth.NeedsRehash(existing.PasswordHash) {
			slog.Warn("admin password hash uses outdated parameters", "username", existing.Username)
		}
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.User{}, fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := repo.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         DefaultAdminName,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
		"name", user.DisplayName(),
		"password", DefaultAdminPassword,
	)

	return user, nil
}

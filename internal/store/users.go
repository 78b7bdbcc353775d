// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/oblog/internal/model"
)

const userColumns = `id, username, email, password_hash, role, name, created_at, updated_at`

func scanUser(row rowScanner) (model.User, error) {
	var (
		u                model.User
		created, updated sqliteTime
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &created, &updated); err != nil {
		return model.User{}, err
	}
	u.CreatedAt = created.Time
	u.UpdatedAt = updated.Time
	return u, nil
}

// CreateUser inserts an author.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	role := arg.Role
	if role == "" {
		role = "author"
	}
	now := dbTime(q.now())

	u, err := scanUser(q.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, role, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		arg.Username, arg.Email, arg.PasswordHash, role, arg.Name, now, now,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("creating user %q: %w", arg.Username, err)
	}
	return u, nil
}

// GetUserByUsername returns the user with the username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		return model.User{}, notFound(err)
	}
	return u, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olegiv/oblog/internal/form"
	"github.com/olegiv/oblog/internal/mail"
	"github.com/olegiv/oblog/internal/model"
)

// ShareService sends "recommend this post" mails.
type ShareService struct {
	sender mail.Sender
	from   string
	logger *slog.Logger
}

// NewShareService creates a ShareService sending as from.
func NewShareService(sender mail.Sender, from string, logger *slog.Logger) *ShareService {
	return &ShareService{sender: sender, from: from, logger: logger}
}

// Share mails post to the recipient of f. postURL must be absolute.
// Delivery errors are returned to the caller.
func (s *ShareService) Share(ctx context.Context, post model.Post, postURL string, f form.ShareForm) error {
	msg := mail.ComposeShare(mail.Share{
		Name:     f.Name,
		Email:    f.Email,
		To:       f.To,
		Comments: f.Comments,
		Title:    post.Title,
		URL:      postURL,
	}, s.from)

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sharing post %d: %w", post.ID, err)
	}
	s.logger.InfoContext(ctx, "post shared", "post_id", post.ID, "to", f.To)
	return nil
}

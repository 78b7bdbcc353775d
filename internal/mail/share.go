// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mail

import "fmt"

// Share describes a "recommend this post" submission.
type Share struct {
	Name     string
	Email    string
	To       string
	Comments string
	Title    string
	URL      string // absolute post URL
}

// ComposeShare builds the recommendation mail sent from sender.
func ComposeShare(s Share, sender string) Message {
	return Message{
		From:    sender,
		To:      s.To,
		Subject: fmt.Sprintf("%s (%s) рекомендует Вам прочитать статью %s", s.Name, s.Email, s.Title),
		Body: fmt.Sprintf("Для чтения статьи: %s \n\nперейдите по ссылке: %s\n\nкомментарий %s: %s",
			s.Title, s.URL, s.Name, s.Comments),
	}
}

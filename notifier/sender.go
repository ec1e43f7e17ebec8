// Package notifier mengirim push notification ke device user.
package notifier

import (
	"context"

	"inventara/logging"
)

// Message adalah satu push ke satu device token.
type Message struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender hanya mencatat push ke log. Dipakai bila PUSH_WEBHOOK_URL kosong.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	logging.Info().
		Str("token", mask(msg.Token)).
		Str("title", msg.Title).
		Interface("data", msg.Data).
		Msg("push notification")
	return nil
}

func mask(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}

package authsvc

import (
	"context"
	"log/slog"
)

// LogNotifier "sends" codes by logging them. Stand-in for a real SMS/email
// delivery service.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) Send(_ context.Context, channel, contact, code string) error {
	n.Log.Info("otp issued", "channel", channel, "contact", contact, "code", code)
	return nil
}

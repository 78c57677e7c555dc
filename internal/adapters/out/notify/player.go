// Package notify holds the server-side stand-in for the new-order chime.
package notify

import (
	"context"
	"log/slog"
)

// LogNotificationPlayer implements ports.NotificationPlayer by emitting a log
// record instead of audio. Deployments with a real audio sink swap this out.
type LogNotificationPlayer struct {
	logger *slog.Logger
}

// NewLogNotificationPlayer creates a log-backed notification player.
func NewLogNotificationPlayer(logger *slog.Logger) *LogNotificationPlayer {
	return &LogNotificationPlayer{
		logger: logger.With("component", "notification_player"),
	}
}

// Play announces the new-order notification.
func (p *LogNotificationPlayer) Play(_ context.Context) error {
	p.logger.Info("new order notification")
	return nil
}

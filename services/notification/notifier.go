// Package notification delivers user-facing messages. Delivery channels are
// outside this service; the default notifier records each message in the log.
package notification

import (
	"context"

	"go.uber.org/zap"
)

// Notifier sends a message to one account.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string, data map[string]string) error
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, userID, title, body string, data map[string]string) error {
	fields := []zap.Field{
		zap.String("userId", userID),
		zap.String("title", title),
		zap.String("body", body),
	}
	if kind, ok := data["type"]; ok {
		fields = append(fields, zap.String("type", kind))
	}
	n.logger.Info("notification", fields...)
	return nil
}

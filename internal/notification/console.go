package notification

import (
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
)

// ConsoleNotifier logs digests instead of sending them. Used when no SendGrid key is configured.
type ConsoleNotifier struct {
	log     logger.Log
	appName string
}

func NewConsoleNotifier(log logger.Log, appName string) *ConsoleNotifier {
	return &ConsoleNotifier{log: log, appName: appName}
}

func (n *ConsoleNotifier) SendDigest(_ context.Context, recipient models.ReminderRecipient) error {
	msg, err := RenderDigest(n.appName, recipient)
	if err != nil {
		return err
	}
	n.log.Info("reminder email",
		"to", msg.ToEmail,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}

package notification

import (
	"context"
	"log/slog"
)

const (
	// KindDepositApproved indicates an admin approved a deposit and the wallet was credited.
	KindDepositApproved = "deposit_approved"
	// KindDepositRejected indicates an admin rejected a deposit.
	KindDepositRejected = "deposit_rejected"
	// KindOrderPlaced indicates an order was created.
	KindOrderPlaced = "order_placed"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}

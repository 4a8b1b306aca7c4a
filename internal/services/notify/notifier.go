package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

type EventType string

const (
	SellerApproved EventType = "seller.approved"
	SellerDenied   EventType = "seller.denied"
	EventApproved  EventType = "event.approved"
	EventRejected  EventType = "event.rejected"
)

// Notification carries a decision outcome to whatever sends the email.
type Notification struct {
	Type         EventType      `json:"type"`
	AccountEmail string         `json:"accountEmail"`
	Payload      map[string]any `json:"payload,omitempty"`
}

// Notifier is fire-and-forget: implementations log failures and never
// propagate them, so a dead broker cannot roll back an approval.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier is the fallback when no broker is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) {
	logrus.WithFields(logrus.Fields{
		"type":  n.Type,
		"email": n.AccountEmail,
	}).Info("notification (log only)")
}

package ports

import (
	"context"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Notification is one message for the notification dispatcher.
type Notification struct {
	Channel    Channel
	Recipient  string
	Subject    string
	TemplateID string
	Data       map[string]any
}

// Notifier hands notifications to the dispatcher. Delivery is best effort.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Package rabbitmq hands notifications to the dispatcher service through one
// durable queue per channel.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queues names the queue each notification channel is published to.
type Queues struct {
	Email string
	SMS   string
}

func (q Queues) names() []string {
	return []string{q.Email, q.SMS}
}

func (q Queues) forChannel(c ports.Channel) (string, error) {
	switch c {
	case ports.ChannelEmail:
		return q.Email, nil
	case ports.ChannelSMS:
		return q.SMS, nil
	default:
		return "", fmt.Errorf("no queue for notification channel %q", c)
	}
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// message is the body the dispatcher reads off the queue.
type message struct {
	Channel    ports.Channel  `json:"channel"`
	To         string         `json:"to"`
	Subject    string         `json:"subject,omitempty"`
	TemplateID string         `json:"templateId"`
	Data       map[string]any `json:"data,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type Notifier struct {
	conn   *amqp.Connection
	chn    publisher
	queues Queues
	now    func() time.Time
}

// Dial connects to the broker, opens a channel and declares the queues.
func Dial(url string, queues Queues) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	chn, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	for _, name := range queues.names() {
		if _, err = chn.QueueDeclare(
			name,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,
		); err != nil {
			_ = chn.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", name, err)
		}
	}

	n := NewNotifier(chn, queues)
	n.conn = conn
	return n, nil
}

// NewNotifier publishes through an already opened channel.
func NewNotifier(chn publisher, queues Queues) *Notifier {
	return &Notifier{chn: chn, queues: queues, now: time.Now}
}

func (n *Notifier) Send(ctx context.Context, notification ports.Notification) error {
	if notification.Recipient == "" {
		return errors.New("notification has no recipient")
	}

	queue, err := n.queues.forChannel(notification.Channel)
	if err != nil {
		return err
	}

	body, err := json.Marshal(message{
		Channel:    notification.Channel,
		To:         notification.Recipient,
		Subject:    notification.Subject,
		TemplateID: notification.TemplateID,
		Data:       notification.Data,
		CreatedAt:  n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	return n.chn.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key is the queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    n.now().UTC(),
			Body:         body,
		},
	)
}

// Close closes the channel and the connection opened by Dial.
func (n *Notifier) Close() error {
	var problems []error
	if c, ok := n.chn.(interface{ Close() error }); ok {
		problems = append(problems, c.Close())
	}
	if n.conn != nil {
		problems = append(problems, n.conn.Close())
	}
	return errors.Join(problems...)
}

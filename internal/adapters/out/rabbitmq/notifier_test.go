package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	key string
	msg amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	if exchange != "" {
		return errors.New("unexpected exchange " + exchange)
	}
	f.sent = append(f.sent, published{key: key, msg: msg})
	return nil
}

func newTestNotifier(chn *fakeChannel) *Notifier {
	n := NewNotifier(chn, Queues{Email: "notifications.email", SMS: "notifications.sms"})
	n.now = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }
	return n
}

func TestNotifier_Send(t *testing.T) {
	// Arrange
	chn := &fakeChannel{}
	notifier := newTestNotifier(chn)

	// Act
	err := notifier.Send(t.Context(), ports.Notification{
		Channel:    ports.ChannelEmail,
		Recipient:  "ada@example.com",
		Subject:    "Your order is on its way",
		TemplateID: "shipment_created_customer",
		Data:       map[string]any{"shipmentReference": "OBANA-20250314-AB12CD34"},
	})
	require.NoError(t, err)

	err = notifier.Send(t.Context(), ports.Notification{
		Channel:    ports.ChannelSMS,
		Recipient:  "+2348000000002",
		TemplateID: "shipment_created_customer",
	})
	require.NoError(t, err)

	// Assert
	require.Len(t, chn.sent, 2)
	assert.Equal(t, "notifications.email", chn.sent[0].key)
	assert.Equal(t, "notifications.sms", chn.sent[1].key)
	assert.Equal(t, amqp.Persistent, chn.sent[0].msg.DeliveryMode)
	assert.Equal(t, "application/json", chn.sent[0].msg.ContentType)

	var body map[string]any
	require.NoError(t, json.Unmarshal(chn.sent[0].msg.Body, &body))
	assert.Equal(t, "email", body["channel"])
	assert.Equal(t, "ada@example.com", body["to"])
	assert.Equal(t, "shipment_created_customer", body["templateId"])
	assert.Equal(t, "2025-03-14T09:30:00Z", body["createdAt"])
	assert.Equal(t, map[string]any{"shipmentReference": "OBANA-20250314-AB12CD34"}, body["data"])
}

func TestNotifier_SendRejects(t *testing.T) {
	tests := []struct {
		name         string
		notification ports.Notification
		wantErr      string
	}{
		{"no recipient", ports.Notification{Channel: ports.ChannelEmail}, "no recipient"},
		{"unknown channel", ports.Notification{Channel: "push", Recipient: "x"}, `channel "push"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chn := &fakeChannel{}
			err := newTestNotifier(chn).Send(t.Context(), tt.notification)

			require.ErrorContains(t, err, tt.wantErr)
			assert.Empty(t, chn.sent)
		})
	}
}

func TestNotifier_PublishError(t *testing.T) {
	chn := &fakeChannel{err: amqp.ErrClosed}

	err := newTestNotifier(chn).Send(t.Context(), ports.Notification{Channel: ports.ChannelSMS, Recipient: "+2348000000002"})

	require.ErrorIs(t, err, amqp.ErrClosed)
}

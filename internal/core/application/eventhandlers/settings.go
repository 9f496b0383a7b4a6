// Package eventhandlers reacts to the shipment events relayed from the outbox.
//
// Every handler decodes the stored JSON payload back into the event it was
// written from and fans it out to the outbound channels: the notification
// dispatcher and the order status publisher. The relay delivers a message at
// least once, so the event id travels with every side effect and downstream
// consumers can drop repeats.
package eventhandlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"fulfillment/internal/core/ports"
)

// Settings holds the addresses and links the notifications refer to.
type Settings struct {
	OpsEmail        string
	PickupTeamEmail string
	TrackingBaseURL string
}

// TrackingURL builds the public tracking link for a shipment reference.
func (s Settings) TrackingURL(reference string) string {
	return strings.TrimRight(s.TrackingBaseURL, "/") + "/" + reference
}

func decode[T any](msg ports.OutboxMessage) (T, error) {
	var event T
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return event, fmt.Errorf("decode %s payload of message %s: %w", msg.EventType, msg.ID, err)
	}
	return event, nil
}

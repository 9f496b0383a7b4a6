// Package kafka consumes carrier tracking events. Every message is applied the
// same way as a carrier webhook call.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	handlerTimeout = 10 * time.Second
	maxTries       = 3
)

type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type CarrierUpdateReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileCarrierUpdateCommand) (commands.StatusChangeResult, error)
}

// carrierEvent is the envelope published by the carrier integrations. When
// carrier is empty the message key names the carrier.
type carrierEvent struct {
	Carrier string         `json:"carrier"`
	Payload map[string]any `json:"payload"`
}

// CarrierEventsConsumer applies carrier tracking events to shipments.
//
// A message is committed once it was applied or once it can never be applied
// (unknown shipment, malformed body, forbidden transition). Other failures are
// retried a few times with a growing pause before the message is given up.
type CarrierEventsConsumer struct {
	reader     reader
	reconciler CarrierUpdateReconciler
	backoff    time.Duration
	logger     *zap.Logger
}

func NewCarrierEventsConsumer(
	brokers []string,
	topic string,
	groupID string,
	reconciler CarrierUpdateReconciler,
	logger *zap.Logger,
) *CarrierEventsConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
	return newCarrierEventsConsumer(r, reconciler, time.Second, logger)
}

func newCarrierEventsConsumer(r reader, reconciler CarrierUpdateReconciler, backoff time.Duration, logger *zap.Logger) *CarrierEventsConsumer {
	return &CarrierEventsConsumer{
		reader:     r,
		reconciler: reconciler,
		backoff:    backoff,
		logger:     logger.With(zap.String("component", "carrier_events_consumer")),
	}
}

// Run consumes until ctx is cancelled.
func (c *CarrierEventsConsumer) Run(ctx context.Context) {
	c.logger.Info("carrier events consumer started")
	defer c.logger.Info("carrier events consumer stopped")

	for {
		if ctx.Err() != nil {
			return
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("fetch carrier event", zap.Error(err))
			if !c.sleep(ctx, c.backoff) {
				return
			}
			continue
		}

		c.process(ctx, m)

		if err = c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.logger.Error("commit carrier event", zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

func (c *CarrierEventsConsumer) process(ctx context.Context, m kafka.Message) {
	cmd, err := decodeCommand(m)
	if err != nil {
		c.logger.Warn("carrier event dropped", zap.Int64("offset", m.Offset), zap.Error(err))
		return
	}

	for try := 1; ; try++ {
		err = c.apply(ctx, cmd)
		if err == nil {
			return
		}
		if permanent(err) || try == maxTries {
			c.logger.Warn("carrier event not applied",
				zap.String("carrier", cmd.CarrierSlug()),
				zap.Int64("offset", m.Offset),
				zap.Int("tries", try),
				zap.Error(err),
			)
			return
		}
		if !c.sleep(ctx, c.backoff*time.Duration(try)) {
			return
		}
	}
}

func (c *CarrierEventsConsumer) apply(ctx context.Context, cmd commands.ReconcileCarrierUpdateCommand) error {
	ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	_, err := c.reconciler.Handle(ctx, cmd)
	return err
}

func (c *CarrierEventsConsumer) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *CarrierEventsConsumer) Close() error {
	return c.reader.Close()
}

func decodeCommand(m kafka.Message) (commands.ReconcileCarrierUpdateCommand, error) {
	var event carrierEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return commands.ReconcileCarrierUpdateCommand{}, fmt.Errorf("decode carrier event: %w", err)
	}
	carrier := event.Carrier
	if carrier == "" {
		carrier = string(m.Key)
	}
	return commands.NewReconcileCarrierUpdateCommand(carrier, event.Payload)
}

func permanent(err error) bool {
	var validation *commands.ValidationError
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, shipment.ErrInvalidTransition) ||
		errors.Is(err, shipment.ErrCancelNotAllowed) ||
		errors.As(err, &validation)
}

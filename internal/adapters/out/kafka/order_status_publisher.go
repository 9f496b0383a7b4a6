// Package kafka publishes shipment progress to the order service.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/Shopify/sarama"
	"go.uber.org/zap"
)

// NewProducerConfig returns the settings of the order sync producer: every
// replica acknowledges and failed sends are retried by the client.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 10
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second
	return config
}

// OrderStatusPublisher writes one message per change, keyed by order reference
// so all changes of an order land on the same partition in order.
type OrderStatusPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewOrderStatusPublisher(brokers []string, topic string, logger *zap.Logger) (*OrderStatusPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewOrderStatusPublisherWithProducer(producer, topic, logger), nil
}

func NewOrderStatusPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *OrderStatusPublisher {
	return &OrderStatusPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With(zap.String("component", "order_status_publisher")),
	}
}

func (p *OrderStatusPublisher) Publish(ctx context.Context, change ports.OrderStatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encode order status change: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(change.OrderReference),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("shipment-reference"), Value: []byte(change.ShipmentReference)},
		},
	}
	if deadline, ok := ctx.Deadline(); ok {
		msg.Metadata = deadline
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send order status change: %w", err)
	}

	p.logger.Debug("order status change published",
		zap.String("order_reference", change.OrderReference),
		zap.String("status", change.Status),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *OrderStatusPublisher) Close() error {
	return p.producer.Close()
}

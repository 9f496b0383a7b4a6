package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// ErrNoOutboxMessages is returned when a relay pass finds nothing to dispatch.
var ErrNoOutboxMessages = errors.New("no outbox messages")

// OutboxOptions tune the relay.
type OutboxOptions struct {
	BatchSize      int
	MaxAttempts    int
	StaleAfter     time.Duration
	HandlerTimeout time.Duration
}

func (o OutboxOptions) withDefaults() OutboxOptions {
	if o.BatchSize <= 0 {
		o.BatchSize = 20
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = 5 * time.Minute
	}
	if o.HandlerTimeout <= 0 {
		o.HandlerTimeout = 10 * time.Second
	}
	return o
}

// ProcessOutboxCommandHandler relays outbox messages to their event handlers.
//
// A pass claims a batch in a short transaction and commits before any handler
// runs, so no database connection is held while brokers are called. Each
// message is then handed to every handler registered for its type, each call
// with its own timeout. A message is completed when all handlers succeed,
// otherwise it goes back to pending until MaxAttempts is reached and is then
// marked failed.
type ProcessOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	handlers   map[string][]ports.EventHandler
	options    OutboxOptions
	logger     *zap.Logger
}

func NewProcessOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	handlers map[string][]ports.EventHandler,
	options OutboxOptions,
	logger *zap.Logger,
) ProcessOutboxCommandHandler {
	return ProcessOutboxCommandHandler{
		uowFactory: uowFactory,
		handlers:   handlers,
		options:    options.withDefaults(),
		logger:     logger.With(zap.String("component", "outbox_relay")),
	}
}

// Handle runs one pass and returns the number of messages dispatched successfully.
func (h ProcessOutboxCommandHandler) Handle(ctx context.Context, cmd ProcessOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	messages, err := h.claim(ctx)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, ErrNoOutboxMessages
	}

	completed := 0
	for _, msg := range messages {
		dispatchErr := h.dispatch(ctx, msg)

		if err = h.settle(ctx, msg, dispatchErr); err != nil {
			return completed, err
		}
		if dispatchErr == nil {
			completed++
		}
	}

	return completed, nil
}

func (h ProcessOutboxCommandHandler) claim(ctx context.Context) ([]ports.OutboxMessage, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	messages, err := uow.OutboxRepository().Claim(ctx, h.options.BatchSize, h.options.StaleAfter)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return messages, nil
}

func (h ProcessOutboxCommandHandler) dispatch(ctx context.Context, msg ports.OutboxMessage) error {
	var problems []error
	for _, handler := range h.handlers[msg.EventType] {
		if err := h.call(ctx, handler, msg); err != nil {
			problems = append(problems, err)
		}
	}
	return errors.Join(problems...)
}

func (h ProcessOutboxCommandHandler) call(ctx context.Context, handler ports.EventHandler, msg ports.OutboxMessage) (err error) {
	ctx, cancel := context.WithTimeout(ctx, h.options.HandlerTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()

	return handler.Handle(ctx, msg)
}

func (h ProcessOutboxCommandHandler) settle(ctx context.Context, msg ports.OutboxMessage, dispatchErr error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	if dispatchErr == nil {
		if err := repo.MarkCompleted(ctx, msg.ID); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	final := msg.Attempts >= h.options.MaxAttempts
	h.logger.Warn("outbox message dispatch failed",
		zap.String("message_id", msg.ID.String()),
		zap.String("event_type", msg.EventType),
		zap.Int("attempts", msg.Attempts),
		zap.Bool("final", final),
		zap.Error(dispatchErr),
	)

	if err := repo.MarkFailed(ctx, msg.ID, dispatchErr.Error(), final); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

package jobs

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Consumer interface {
	Run(ctx context.Context)
	Close() error
}

// CarrierEventsJob keeps the carrier events consumer running in the background.
type CarrierEventsJob struct {
	consumer Consumer
	cancel   context.CancelFunc
	done     sync.WaitGroup
	logger   *zap.Logger
}

func NewCarrierEventsJob(consumer Consumer, logger *zap.Logger) *CarrierEventsJob {
	return &CarrierEventsJob{
		consumer: consumer,
		logger:   logger.With(zap.String("component", "carrier_events_job")),
	}
}

func (j *CarrierEventsJob) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	j.done.Add(1)
	go func() {
		defer j.done.Done()
		j.consumer.Run(ctx)
	}()
	return nil
}

// Stop cancels the consumer, waits for the message in flight and closes the reader.
func (j *CarrierEventsJob) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	j.done.Wait()

	if err := j.consumer.Close(); err != nil {
		j.logger.Warn("close carrier events consumer", zap.Error(err))
	}
}

package jobs

import (
	"context"
	"errors"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOutboxSchedule runs the relay every five seconds.
const DefaultOutboxSchedule = "*/5 * * * * *"

type OutboxRelay interface {
	Handle(ctx context.Context, cmd commands.ProcessOutboxCommand) (int, error)
}

// OutboxRelayJob dispatches pending outbox messages on a schedule.
// A tick that is still running when the next one fires makes it skip.
type OutboxRelayJob struct {
	relay    OutboxRelay
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewOutboxRelayJob creates the job. schedule is a cron expression with a
// leading seconds field; an empty schedule means DefaultOutboxSchedule.
func NewOutboxRelayJob(relay OutboxRelay, schedule string, logger *zap.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxSchedule
	}
	logger = logger.With(zap.String("component", "outbox_relay_job"))

	return &OutboxRelayJob{
		relay:    relay,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger.Sugar()})),
		),
		logger: logger,
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *OutboxRelayJob) tick() {
	ctx := context.Background()

	dispatched, err := j.relay.Handle(ctx, commands.NewProcessOutboxCommand())
	if errors.Is(err, commands.ErrNoOutboxMessages) {
		return
	}
	if err != nil {
		j.logger.Error("outbox relay pass failed", zap.Int("dispatched", dispatched), zap.Error(err))
		return
	}
	j.logger.Debug("outbox relay pass finished", zap.Int("dispatched", dispatched))
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox relay job stopped")
}

// cronLogger routes the scheduler's own messages to zap.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

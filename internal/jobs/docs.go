// Package jobs runs the background work of the fulfillment service.
//
// # Available Jobs
//
// 1. OutboxRelayJob - dispatches pending outbox messages to their event
// handlers on a cron schedule (github.com/robfig/cron/v3, seconds field
// enabled, OUTBOX_SCHEDULE). Passes never overlap.
// 2. CarrierEventsJob - keeps the Kafka carrier events consumer running.
// It is only created when a broker is configured.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOutboxRelayJob(relayHandler, cfg.OutboxSchedule, logger),
//		jobs.NewCarrierEventsJob(consumer, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - An empty outbox is not an error and is not logged
//   - A failed relay pass is logged; the next tick tries again
//   - Failed job starts stop the jobs already running
package jobs

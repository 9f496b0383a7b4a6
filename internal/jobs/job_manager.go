package jobs

import (
	"fmt"
)

// Job is a background task with an explicit lifecycle.
type Job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  Job
}

// JobManager coordinates all background jobs in the application.
// Provides a unified interface to start and stop them.
type JobManager struct {
	jobs []namedJob
}

// NewJobManager creates a manager for the outbox relay. The carrier events
// job is optional and skipped when nil.
func NewJobManager(outboxRelayJob *OutboxRelayJob, carrierEventsJob *CarrierEventsJob) *JobManager {
	jm := &JobManager{}
	jm.jobs = append(jm.jobs, namedJob{"outbox relay", outboxRelayJob})
	if carrierEventsJob != nil {
		jm.jobs = append(jm.jobs, namedJob{"carrier events", carrierEventsJob})
	}
	return jm
}

// StartAll starts the jobs in order. When one fails, the ones already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	return nil
}

// StopAll stops the jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}

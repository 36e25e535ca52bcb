// Package runner consumes queued report jobs and drives the pipeline with
// retry semantics. Retries only fire on job-level faults; a report whose data
// is merely incomplete is a success with notes, not a failure.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"compintel/server/config"
	"compintel/server/internal/pipeline"
	"compintel/server/internal/queue"
)

// BatchRunner processes report jobs from the queue.
type BatchRunner struct {
	pipe      *pipeline.Pipeline
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.ReportQueue
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewBatchRunner(pipe *pipeline.Pipeline, q *queue.ReportQueue, cfg *config.Config, logger *logrus.Logger) *BatchRunner {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchRunner{
		pipe:   pipe,
		queue:  q,
		config: cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins consuming jobs from the queue.
func (r *BatchRunner) Start() {
	for i := 0; i < r.config.Batch.WorkerCount; i++ {
		r.waitGroup.Add(1)
		go r.workLoop()
	}
}

// Stop gracefully shuts down the runner.
func (r *BatchRunner) Stop() {
	r.cancel()
	r.waitGroup.Wait()
}

// workLoop receives jobs until the queue closes or the runner stops. The
// shared channel hands each job to exactly one worker.
func (r *BatchRunner) workLoop() {
	defer r.waitGroup.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case job, ok := <-r.queue.Jobs():
			if !ok {
				return
			}
			if err := r.processJob(job); err != nil {
				r.logger.WithError(err).Error("Report job abandoned")
			}
		}
	}
}

// processJob runs one job with retries.
func (r *BatchRunner) processJob(job queue.ReportJob) error {
	var err error
	for attempt := 0; attempt <= r.config.Batch.MaxRetries; attempt++ {
		if attempt > 0 {
			r.logger.Infof("Retrying report job %s, attempt %d of %d", job.ID, attempt, r.config.Batch.MaxRetries)
			select {
			case <-r.ctx.Done():
				return r.ctx.Err()
			case <-time.After(time.Duration(r.config.Batch.RetryDelay) * time.Second):
			}
		}

		err = r.runJob(job)
		if err == nil {
			r.logger.Infof("Processed report job %s (%d urls)", job.ID, len(job.URLs))
			return nil
		}
		r.logger.Errorf("Report job failed: %v", err)
	}

	return fmt.Errorf("failed to process job %s after %d attempts: %w", job.ID, r.config.Batch.MaxRetries, err)
}

func (r *BatchRunner) runJob(job queue.ReportJob) error {
	if len(job.URLs) == 0 {
		return fmt.Errorf("job %s has no urls", job.ID)
	}
	r.pipe.RunMany(job.URLs)
	return nil
}

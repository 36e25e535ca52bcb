// Package queue is the buffered hand-off between the API and the batch
// workers. Each pushed job is delivered to exactly one consumer: workers
// receive from the shared job channel, so a job is never processed more than
// once no matter how many workers run.
package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// ReportJob is one queued batch of listing URLs to analyze.
type ReportJob struct {
	ID   string   `json:"id"`
	URLs []string `json:"urls"`
}

// ReportQueue is an in-memory queue of report jobs.
type ReportQueue struct {
	items   chan ReportJob
	maxSize int
	closed  bool
	mu      sync.RWMutex
	logger  *logrus.Logger
}

// NewReportQueue creates a report queue with the specified buffer size.
func NewReportQueue(bufferSize int, logger *logrus.Logger) *ReportQueue {
	return &ReportQueue{
		items:   make(chan ReportJob, bufferSize),
		maxSize: bufferSize,
		logger:  logger,
	}
}

// Push adds a job to the queue. The send is non-blocking: a full buffer is
// reported as ErrQueueFull rather than stalling the API handler.
func (q *ReportQueue) Push(job ReportJob) error {
	// The read lock is held across the send so Close cannot close the
	// channel mid-push.
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- job:
		q.logger.WithField("urls", len(job.URLs)).Debug("Pushed job to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Jobs returns the receive side of the queue. Consumers range over it; the
// channel closes when the queue is closed and drained.
func (q *ReportQueue) Jobs() <-chan ReportJob {
	return q.items
}

// Close stops the queue and prevents new jobs from being added. Jobs already
// buffered remain receivable.
func (q *ReportQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.items)
	return nil
}

// Len returns the current number of queued jobs.
func (q *ReportQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *ReportQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Package workflow runs submitted jobs through the document processing
// pipeline: a bounded queue feeds a fixed worker pool, and each worker
// drives a job through the ordered pipeline steps with bounded retry.
package workflow

import (
	"github.com/google/uuid"

	"github.com/jslate/intake/internal/jobs"
)

// Queue is a bounded FIFO of job ids awaiting processing. Enqueue never
// blocks; a full queue is reported to the caller instead of stalling the
// upload path.
type Queue struct {
	ch chan uuid.UUID
}

// NewQueue creates a Queue holding up to size pending ids.
func NewQueue(size int) *Queue {
	return &Queue{
		ch: make(chan uuid.UUID, size),
	}
}

// Enqueue adds a job id, returning jobs.ErrQueueFull when at capacity.
func (q *Queue) Enqueue(id uuid.UUID) error {
	select {
	case q.ch <- id:
		return nil
	default:
		return jobs.ErrQueueFull
	}
}

// Dequeue exposes the receive side for workers.
func (q *Queue) Dequeue() <-chan uuid.UUID {
	return q.ch
}

// Len reports the number of ids currently queued.
func (q *Queue) Len() int {
	return len(q.ch)
}

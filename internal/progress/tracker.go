// Package progress provides concurrency-safe per-job counters for batch
// extraction runs. State lives only for a job's lifetime: created at start,
// incremented by workers, removed on stop or by the age sweep.
package progress

import (
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jdparse/jdparse/internal/logger"
)

const shardCount = 16

// DuplicateJobError reports a Start for a job id that is already tracked.
type DuplicateJobError struct {
	JobID string
}

func (e *DuplicateJobError) Error() string {
	return fmt.Sprintf("job already tracked: %s", e.JobID)
}

// JobNotFoundError reports a lookup for an untracked job id.
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job not tracked: %s", e.JobID)
}

// Snapshot is a point-in-time view of one job's counters.
type Snapshot struct {
	Total     int       `json:"total"`
	Processed int       `json:"processed"`
	CreatedAt time.Time `json:"created_at"`
}

type state struct {
	total     int
	processed atomic.Int64
	createdAt time.Time
}

type shard struct {
	mu   sync.Mutex
	jobs map[string]*state
}

// Tracker tracks progress for all active extraction jobs. Jobs are spread
// over shards so operations on different jobs do not contend; a job's own
// counter is an atomic, so concurrent increments from parallel workers are
// safe.
type Tracker struct {
	shards [shardCount]*shard
}

// NewTracker creates an empty tracker. Callers own its lifecycle; there is
// no process-wide instance.
func NewTracker() *Tracker {
	t := &Tracker{}
	for i := range t.shards {
		t.shards[i] = &shard{jobs: make(map[string]*state)}
	}
	return t
}

func (t *Tracker) shardFor(jobID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(jobID))
	return t.shards[h.Sum32()%shardCount]
}

// Start begins tracking a job with the declared number of units. It fails
// with *DuplicateJobError when the job id is already tracked.
func (t *Tracker) Start(jobID string, totalUnits int) error {
	s := t.shardFor(jobID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[jobID]; exists {
		return &DuplicateJobError{JobID: jobID}
	}
	s.jobs[jobID] = &state{
		total:     totalUnits,
		createdAt: time.Now().UTC(),
	}
	logger.Info("started tracking", "job_id", jobID, "total_units", totalUnits)
	return nil
}

// Increment atomically adds one processed unit. Call it after every unit,
// success or failure. An unknown job id logs a warning and is otherwise a
// no-op. Processed may exceed total if the caller mis-declared the total;
// that is the caller's responsibility and is not enforced here.
func (t *Tracker) Increment(jobID string) {
	s := t.shardFor(jobID)
	s.mu.Lock()
	st, ok := s.jobs[jobID]
	s.mu.Unlock()

	if !ok {
		logger.Warn("no progress state found", "job_id", jobID)
		return
	}
	st.processed.Add(1)
}

// Get returns the current snapshot for a job, or *JobNotFoundError.
func (t *Tracker) Get(jobID string) (Snapshot, error) {
	s := t.shardFor(jobID)
	s.mu.Lock()
	st, ok := s.jobs[jobID]
	s.mu.Unlock()

	if !ok {
		return Snapshot{}, &JobNotFoundError{JobID: jobID}
	}
	return Snapshot{
		Total:     st.total,
		Processed: int(st.processed.Load()),
		CreatedAt: st.createdAt,
	}, nil
}

// Stop removes a job's state. Stopping an untracked job is a no-op.
func (t *Tracker) Stop(jobID string) {
	s := t.shardFor(jobID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[jobID]; ok {
		delete(s.jobs, jobID)
		logger.Info("stopped tracking", "job_id", jobID)
	}
}

// Sweep removes every job older than maxAge and returns how many were
// removed. Run it periodically to keep abandoned jobs from leaking.
func (t *Tracker) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0

	for _, s := range t.shards {
		s.mu.Lock()
		for jobID, st := range s.jobs {
			if st.createdAt.Before(cutoff) {
				delete(s.jobs, jobID)
				removed++
				logger.Info("swept stale progress state", "job_id", jobID)
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Package batch runs many job descriptions through the extraction chain as
// one job, updating per-job progress counters and handing the collected
// results to a storage collaborator.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jdparse/jdparse/internal/jd"
	"github.com/jdparse/jdparse/internal/logger"
	"github.com/jdparse/jdparse/internal/progress"
	"github.com/jdparse/jdparse/internal/storage"
)

// Extractor is the slice of the orchestrator the runner needs.
type Extractor interface {
	Extract(ctx context.Context, jobText, jobID string) (*jd.Record, error)
}

// RowResult is the outcome of one spreadsheet row.
type RowResult struct {
	RowIndex int        `json:"row_index"`
	Record   *jd.Record `json:"record,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// Summary aggregates a finished job.
type Summary struct {
	JobID        string      `json:"job_id"`
	Results      []RowResult `json:"results"`
	TotalRows    int         `json:"total_processed"`
	SuccessCount int         `json:"success_count"`
	FailureCount int         `json:"failure_count"`
}

// Runner executes batch jobs. A row that exhausts every provider is recorded
// as a per-row failure; it never aborts the remaining rows. Progress is
// incremented after every row regardless of outcome so pollers see steady
// movement.
type Runner struct {
	extractor Extractor
	tracker   *progress.Tracker
	store     storage.Store
	limiter   *rate.Limiter
	workers   int
}

// Option configures the runner.
type Option func(*Runner)

// WithWorkers sets how many rows are processed concurrently.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithRateLimit caps provider calls at n per second across the job's
// workers. Zero or negative disables the cap.
func WithRateLimit(n float64) Option {
	return func(r *Runner) {
		if n > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// NewRunner creates a Runner. The tracker is required; the store may be nil
// when the caller consumes the returned Summary directly.
func NewRunner(extractor Extractor, tracker *progress.Tracker, store storage.Store, opts ...Option) *Runner {
	r := &Runner{
		extractor: extractor,
		tracker:   tracker,
		store:     store,
		workers:   1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every non-empty row and returns the job summary. It blocks
// until the job finishes; callers wanting a detached job start it in a
// goroutine and poll the progress tracker. Progress state is left in place
// for pollers; the caller stops or sweeps it.
func (r *Runner) Run(ctx context.Context, jobID string, rows []string) (*Summary, error) {
	total := 0
	for _, row := range rows {
		if strings.TrimSpace(row) != "" {
			total++
		}
	}

	if err := r.tracker.Start(jobID, total); err != nil {
		return nil, fmt.Errorf("start progress tracking: %w", err)
	}
	logger.Info("batch job started", "job_id", jobID, "rows", total, "workers", r.workers)

	var (
		mu        sync.Mutex
		results   []RowResult
		successes atomic.Int64
		failures  atomic.Int64
	)

	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	for i, row := range rows {
		if strings.TrimSpace(row) == "" {
			continue
		}
		g.Go(func() error {
			result := r.processRow(ctx, jobID, i, row)
			if result.Error == "" {
				successes.Add(1)
			} else {
				failures.Add(1)
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			r.tracker.Increment(jobID)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are per-row

	summary := &Summary{
		JobID:        jobID,
		Results:      results,
		TotalRows:    len(results),
		SuccessCount: int(successes.Load()),
		FailureCount: int(failures.Load()),
	}

	if r.store != nil {
		if err := r.putSummary(summary); err != nil {
			logger.Error("failed to store batch results", "job_id", jobID, "error", err)
		}
	}

	logger.Info("batch job complete",
		"job_id", jobID,
		"success", summary.SuccessCount,
		"failed", summary.FailureCount)
	return summary, nil
}

// processRow runs one row through the extractor. All errors degrade to a
// recorded per-row failure.
func (r *Runner) processRow(ctx context.Context, jobID string, idx int, row string) RowResult {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return RowResult{RowIndex: idx, Error: err.Error()}
		}
	}

	rec, err := r.extractor.Extract(ctx, row, jobID)
	if err != nil {
		logger.Warn("row extraction failed", "job_id", jobID, "row", idx, "error", err)
		return RowResult{RowIndex: idx, Error: err.Error()}
	}
	return RowResult{RowIndex: idx, Record: rec}
}

func (r *Runner) putSummary(summary *Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.store.Put(summary.JobID, data)
}

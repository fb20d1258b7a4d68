package progress

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTracker_StartIncrementGet(t *testing.T) {
	tr := NewTracker()

	if err := tr.Start("job-1", 10); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		tr.Increment("job-1")
	}

	snap, err := tr.Get("job-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.Total != 10 {
		t.Errorf("Total = %d, want 10", snap.Total)
	}
	if snap.Processed != 5 {
		t.Errorf("Processed = %d, want 5", snap.Processed)
	}
	if snap.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestTracker_DuplicateStart(t *testing.T) {
	tr := NewTracker()

	if err := tr.Start("job-1", 3); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	err := tr.Start("job-1", 7)
	var dup *DuplicateJobError
	if !errors.As(err, &dup) {
		t.Fatalf("Start() error = %v, want *DuplicateJobError", err)
	}
	if dup.JobID != "job-1" {
		t.Errorf("JobID = %q, want %q", dup.JobID, "job-1")
	}

	// The original state must be untouched.
	snap, err := tr.Get("job-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.Total != 3 {
		t.Errorf("Total = %d, want 3", snap.Total)
	}
}

func TestTracker_IncrementUnknownJobIsNoop(t *testing.T) {
	tr := NewTracker()
	tr.Increment("never-started")

	if _, err := tr.Get("never-started"); err == nil {
		t.Error("Get() after stray Increment succeeded, want not-found")
	}
}

func TestTracker_StopRemovesState(t *testing.T) {
	tr := NewTracker()

	if err := tr.Start("job-1", 2); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tr.Stop("job-1")

	_, err := tr.Get("job-1")
	var notFound *JobNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Get() error = %v, want *JobNotFoundError", err)
	}

	// Stopping again is fine.
	tr.Stop("job-1")

	// And the id is free for a new run.
	if err := tr.Start("job-1", 4); err != nil {
		t.Fatalf("Start() after Stop error = %v", err)
	}
}

func TestTracker_Sweep(t *testing.T) {
	tr := NewTracker()

	for i := 0; i < 5; i++ {
		if err := tr.Start(fmt.Sprintf("job-%d", i), 1); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	}

	if removed := tr.Sweep(time.Hour); removed != 0 {
		t.Errorf("Sweep(1h) removed %d fresh jobs, want 0", removed)
	}
	if removed := tr.Sweep(-time.Second); removed != 5 {
		t.Errorf("Sweep(-1s) removed %d, want 5", removed)
	}
	if _, err := tr.Get("job-0"); err == nil {
		t.Error("Get() after sweep succeeded, want not-found")
	}
}

func TestTracker_ConcurrentIncrements(t *testing.T) {
	tr := NewTracker()
	const (
		jobs       = 8
		goroutines = 25
		increments = 50
	)

	for i := 0; i < jobs; i++ {
		if err := tr.Start(fmt.Sprintf("job-%d", i), goroutines*increments); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		jobID := fmt.Sprintf("job-%d", i)
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for n := 0; n < increments; n++ {
					tr.Increment(jobID)
				}
			}()
		}
	}
	wg.Wait()

	for i := 0; i < jobs; i++ {
		snap, err := tr.Get(fmt.Sprintf("job-%d", i))
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if snap.Processed != goroutines*increments {
			t.Errorf("job-%d Processed = %d, want %d", i, snap.Processed, goroutines*increments)
		}
	}
}

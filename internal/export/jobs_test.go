package export

import (
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/canvasdoc/internal/format"
)

func TestNewJob_Defaults(t *testing.T) {
	job := NewJob("s1", "u1", format.Options{Format: "text"})
	if job.ID == "" {
		t.Error("expected generated job id")
	}
	if len(job.ID) != 26 {
		t.Errorf("job id length = %d, want 26 (ULID)", len(job.ID))
	}
	if job.Status != StatusQueued || job.Stage != "queued" {
		t.Errorf("status = %q/%q, want queued", job.Status, job.Stage)
	}
}

func TestJob_IDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewJob("s1", "u1", format.Options{}).ID
		if seen[id] {
			t.Fatalf("duplicate job id %q", id)
		}
		seen[id] = true
	}
}

func TestJob_ProgressAndCompletion(t *testing.T) {
	job := NewJob("s1", "u1", format.Options{})

	job.SetProgress("fetching canvases", 30)
	snap := job.Snapshot()
	if snap.Status != StatusRunning || snap.Stage != "fetching canvases" || snap.Percent != 30 {
		t.Errorf("snapshot = %+v", snap)
	}

	job.Complete(&Artifact{Filename: "Test_export_2026-08-31.txt", MIMEType: "text/plain; charset=utf-8"})
	snap = job.Snapshot()
	if snap.Status != StatusCompleted || snap.Percent != 100 {
		t.Errorf("snapshot after complete = %+v", snap)
	}
	if snap.Filename != "Test_export_2026-08-31.txt" {
		t.Errorf("filename = %q", snap.Filename)
	}
	if job.Artifact() == nil {
		t.Error("artifact missing after completion")
	}
}

func TestJob_FailClearsArtifact(t *testing.T) {
	job := NewJob("s1", "u1", format.Options{})
	job.Complete(&Artifact{Filename: "x.txt"})
	job.Fail("fetching canvases", errors.New("db gone"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("status = %q, want failed", snap.Status)
	}
	if snap.Error != "db gone" {
		t.Errorf("error = %q", snap.Error)
	}
	if job.Artifact() != nil {
		t.Error("failed job must not expose an artifact")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	s := NewJobStore(time.Hour)
	job := NewJob("s1", "u1", format.Options{})
	s.Put(job)
	if s.Get(job.ID) != job {
		t.Error("stored job not returned")
	}
	if s.Get("missing") != nil {
		t.Error("unknown id should return nil")
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	s := NewJobStore(10 * time.Millisecond)
	job := NewJob("s1", "u1", format.Options{})
	s.Put(job)

	time.Sleep(20 * time.Millisecond)
	s.Cleanup()
	if s.Get(job.ID) != nil {
		t.Error("expired job should be evicted")
	}
}

func TestJobStore_CleanupKeepsFresh(t *testing.T) {
	s := NewJobStore(time.Hour)
	job := NewJob("s1", "u1", format.Options{})
	s.Put(job)
	s.Cleanup()
	if s.Get(job.ID) == nil {
		t.Error("fresh job should survive cleanup")
	}
}

package export

import (
	"sync"
	"time"

	"github.com/dgallion1/canvasdoc/internal/format"
)

// JobStatus represents the state of one export job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single export.
type Job struct {
	mu sync.Mutex

	ID      string `json:"job_id"`
	StoryID string `json:"story_id"`
	UserID  string `json:"user_id"`

	Options format.Options `json:"options"`

	Status  JobStatus `json:"status"`
	Stage   string    `json:"stage"`
	Percent int       `json:"percent"`
	Error   string    `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Not serialized; fetched via Artifact().
	artifact *Artifact
}

// NewJob builds a queued job.
func NewJob(storyID, userID string, opts format.Options) *Job {
	now := time.Now()
	return &Job{
		ID:        generateULID(),
		StoryID:   storyID,
		UserID:    userID,
		Options:   opts,
		Status:    StatusQueued,
		Stage:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetProgress records a pipeline stage.
func (j *Job) SetProgress(stage string, percent int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusRunning
	j.Stage = stage
	j.Percent = percent
	j.UpdatedAt = time.Now()
}

// Complete stores the finished artifact.
func (j *Job) Complete(a *Artifact) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusCompleted
	j.Stage = "done"
	j.Percent = 100
	j.artifact = a
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed. Failed exports produce no artifact.
func (j *Job) Fail(stage string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Stage = stage
	j.Error = err.Error()
	j.artifact = nil
	j.UpdatedAt = time.Now()
}

// Artifact returns the finished artifact, or nil before completion.
func (j *Job) Artifact() *Artifact {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.artifact
}

// Snapshot is a read-only, JSON-safe copy of job state.
type Snapshot struct {
	ID       string    `json:"job_id"`
	StoryID  string    `json:"story_id"`
	Status   JobStatus `json:"status"`
	Stage    string    `json:"stage"`
	Percent  int       `json:"percent"`
	Error    string    `json:"error,omitempty"`
	Filename string    `json:"filename,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	s := Snapshot{
		ID:      j.ID,
		StoryID: j.StoryID,
		Status:  j.Status,
		Stage:   j.Stage,
		Percent: j.Percent,
		Error:   j.Error,
	}
	if j.artifact != nil {
		s.Filename = j.artifact.Filename
	}
	return s
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{jobs: make(map[string]*Job), ttl: ttl}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes jobs idle past the TTL.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}

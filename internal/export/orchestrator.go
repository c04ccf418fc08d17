package export

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Orchestrator runs export jobs on a bounded worker pool. Concurrency
// exists only between jobs; each export itself is a synchronous
// recursive walk.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	exporter *Exporter
	log      *slog.Logger

	workerCount int
	queueSize   int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; Start launches it.
func NewOrchestrator(exporter *Exporter, log *slog.Logger, workerCount, queueSize int, jobTTL time.Duration) *Orchestrator {
	return &Orchestrator{
		jobs:        NewJobStore(jobTTL),
		queue:       make(chan *Job, queueSize),
		exporter:    exporter,
		log:         log,
		workerCount: workerCount,
		queueSize:   queueSize,
	}
}

// Start launches worker goroutines and the job-store janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.workerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(workerCtx, job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new export job.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.Fail("queue_full", fmt.Errorf("export queue is full (%d)", o.queueSize))
		return fmt.Errorf("export queue is full (%d)", o.queueSize)
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID, "story_id", job.StoryID, "user_id", job.UserID)
	job.SetProgress("starting", 0)

	artifact, err := o.exporter.Export(ctx, job.StoryID, job.UserID, job.Options, job.SetProgress)
	if err != nil {
		// No retries here: transient store failures surface to the
		// caller, which may resubmit the whole export.
		log.Error("export failed", "error", err)
		job.Fail(job.Snapshot().Stage, err)
		return
	}
	job.Complete(artifact)
	log.Info("export job done", "filename", artifact.Filename)
}

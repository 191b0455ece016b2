package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Abraxas-365/seeker/pkg/logx"
	"github.com/Abraxas-365/seeker/recruitment/resume"
)

// Processor runs a single extraction job
type Processor interface {
	ProcessJob(ctx context.Context, job *resume.ExtractionJob) error
}

// ResumeWorker drains the extraction queue with a fixed pool of consumers
type ResumeWorker struct {
	processor    Processor
	queue        resume.JobQueue
	workers      int
	pollTimeout  time.Duration
	moveInterval time.Duration
	wg           sync.WaitGroup
}

func NewResumeWorker(processor Processor, queue resume.JobQueue, workers int) *ResumeWorker {
	if workers < 1 {
		workers = 1
	}
	return &ResumeWorker{
		processor:    processor,
		queue:        queue,
		workers:      workers,
		pollTimeout:  5 * time.Second,
		moveInterval: 30 * time.Second,
	}
}

// Start launches the consumers and the delayed-job mover. They stop when ctx
// is cancelled; Wait blocks until they have.
func (w *ResumeWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d resume workers", w.workers)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.moveDelayedJobs(ctx)
	}()

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processJobs(ctx, id)
		}(i)
	}
}

func (w *ResumeWorker) Wait() {
	w.wg.Wait()
}

func (w *ResumeWorker) processJobs(ctx context.Context, workerID int) {
	logx.Debugf("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debugf("Worker %d stopping", workerID)
			return
		default:
		}

		data, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if ctx.Err() == nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				time.Sleep(time.Second)
			}
			continue
		}
		if len(data) == 0 {
			continue
		}

		var job resume.ExtractionJob
		if err := json.Unmarshal(data, &job); err != nil {
			logx.Errorf("Worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
			continue
		}

		if err := w.processor.ProcessJob(ctx, &job); err != nil {
			logx.Warnf("Worker %d job %s: %v", workerID, job.ID, err)
		}
	}
}

func (w *ResumeWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(w.moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}

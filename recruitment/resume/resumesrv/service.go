package resumesrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/fsx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/pkg/logx"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/resume"
	"github.com/google/uuid"
)

// Service schedules and runs resume text extraction
type Service struct {
	queue      resume.JobQueue
	fileReader fsx.FileReader
	texts      resume.TextStore
	now        func() time.Time
}

func NewService(queue resume.JobQueue, fileReader fsx.FileReader, texts resume.TextStore) *Service {
	return &Service{
		queue:      queue,
		fileReader: fileReader,
		texts:      texts,
		now:        time.Now,
	}
}

// ScheduleExtraction queues the candidate's stored resume for extraction
func (s *Service) ScheduleExtraction(ctx context.Context, c *candidate.Candidate) error {
	if c == nil || c.ResumePath == "" {
		return nil
	}

	job := &resume.ExtractionJob{
		ID:          kernel.NewResumeJobID(uuid.NewString()),
		CandidateID: c.ID,
		Status:      resume.JobStatusPending,
		FilePath:    c.ResumePath,
		FileName:    c.ResumeFileName,
		ContentType: c.ResumeContentType,
		MaxAttempts: resume.DefaultMaxAttempts,
		CreatedAt:   s.now(),
	}

	if err := s.queue.Enqueue(ctx, job.ID, job); err != nil {
		return resume.ErrQueueEnqueueFailed().
			WithCause(err).
			WithDetail("job_id", job.ID).
			WithDetail("candidate_id", c.ID)
	}

	logx.Infof("Queued resume extraction: JobID=%s, CandidateID=%s", job.ID, c.ID)
	return nil
}

// ProcessJob runs one extraction attempt. Failures are rescheduled with
// backoff until the job runs out of attempts.
func (s *Service) ProcessJob(ctx context.Context, job *resume.ExtractionJob) error {
	logx.Infof("Processing extraction: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount+1, job.MaxAttempts)
	job.Status = resume.JobStatusProcessing

	data, err := s.fileReader.ReadFile(ctx, job.FilePath)
	if err != nil {
		return s.handleJobError(ctx, job, "file_read_failed", err)
	}

	text, err := ExtractText(job.ContentType, job.FileName, data)
	if err != nil {
		// a file we cannot parse will not parse on retry either
		if errx.IsCode(err, resume.CodeUnsupportedType) || errx.IsCode(err, resume.CodeExtractionFailed) {
			job.Status = resume.JobStatusFailed
			job.ErrorMessage = err.Error()
			logx.Warnf("Extraction skipped: JobID=%s: %v", job.ID, err)
			return err
		}
		return s.handleJobError(ctx, job, "extraction_failed", err)
	}

	if err := s.texts.UpdateResumeText(ctx, job.CandidateID, text); err != nil {
		return s.handleJobError(ctx, job, "save_failed", err)
	}

	job.Status = resume.JobStatusCompleted
	logx.Infof("Extraction completed: JobID=%s, CandidateID=%s, Chars=%d", job.ID, job.CandidateID, len(text))
	return nil
}

func (s *Service) handleJobError(ctx context.Context, job *resume.ExtractionJob, errorType string, cause error) error {
	job.AttemptCount++
	job.ErrorMessage = cause.Error()

	if !job.CanRetry() {
		job.Status = resume.JobStatusFailed
		logx.Errorf("Extraction failed permanently: JobID=%s, Error=%s: %v", job.ID, errorType, cause)
		return resume.ErrJobFailed().
			WithCause(cause).
			WithDetail("job_id", job.ID).
			WithDetail("error_type", errorType).
			WithDetail("attempts", job.AttemptCount)
	}

	delay := job.RetryDelay()
	next := s.now().Add(delay)
	job.NextRetryAt = &next
	job.Status = resume.JobStatusPending

	logx.Warnf("Extraction failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%s",
		job.ID, job.AttemptCount, job.MaxAttempts, next, errorType)

	if err := s.queue.EnqueueDelayed(ctx, job.ID, job, delay); err != nil {
		job.Status = resume.JobStatusFailed
		return resume.ErrJobRetryFailed().
			WithCause(err).
			WithDetail("job_id", job.ID).
			WithDetail("error_type", errorType)
	}
	return cause
}

// QueueStats reports how many extraction jobs are waiting
func (s *Service) QueueStats(ctx context.Context) (*resume.QueueStats, error) {
	ready, err := s.queue.GetQueueSize(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read queue size", errx.TypeExternal)
	}
	delayed, err := s.queue.GetDelayedQueueSize(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read delayed queue size", errx.TypeExternal)
	}
	return &resume.QueueStats{Ready: ready, Delayed: delayed}, nil
}

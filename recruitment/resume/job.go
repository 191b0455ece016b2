package resume

import (
	"time"

	"github.com/Abraxas-365/seeker/pkg/kernel"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// DefaultMaxAttempts bounds retries of one extraction
const DefaultMaxAttempts = 3

// ExtractionJob asks a worker to pull plain text out of a stored resume
type ExtractionJob struct {
	ID          kernel.ResumeJobID `json:"id"`
	CandidateID kernel.CandidateID `json:"candidate_id"`
	Status      JobStatus          `json:"status"`

	FilePath    string `json:"file_path"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`

	AttemptCount int `json:"attempt_count"`
	MaxAttempts  int `json:"max_attempts"`

	ErrorMessage string `json:"error_message,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
}

// CanRetry reports whether another attempt is allowed after a failure
func (j *ExtractionJob) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

// RetryDelay is the exponential backoff before the next attempt: 2^attempt minutes
func (j *ExtractionJob) RetryDelay() time.Duration {
	return time.Duration(1<<uint(j.AttemptCount)) * time.Minute
}

// QueueStats is the depth of the extraction queue
type QueueStats struct {
	Ready   int64 `json:"ready_jobs"`
	Delayed int64 `json:"delayed_jobs"`
}

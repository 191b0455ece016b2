package candidate

import (
	"context"

	"github.com/Abraxas-365/seeker/pkg/kernel"
)

type Repository interface {
	// Create inserts a new candidate
	Create(ctx context.Context, candidate *Candidate) error

	// Update overwrites an existing candidate
	Update(ctx context.Context, candidate *Candidate) error

	// GetByUserID retrieves the candidate owned by a user
	GetByUserID(ctx context.Context, userID kernel.UserID) (*Candidate, error)

	// UpdateResumeText stores the text extracted from the resume file
	UpdateResumeText(ctx context.Context, id kernel.CandidateID, text string) error
}

// ResumeIndexer is told about every newly stored resume
type ResumeIndexer interface {
	ScheduleExtraction(ctx context.Context, candidate *Candidate) error
}

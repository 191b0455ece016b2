package candidatesrv

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/fsx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/pkg/logx"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/google/uuid"
)

const resumeDir = "resumes"

// CandidateService owns the candidate records behind GET and POST /candidate
type CandidateService struct {
	candidateRepo candidate.Repository
	files         fsx.FileSystem
	indexer       candidate.ResumeIndexer
	now           func() time.Time
}

// NewCandidateService creates a new instance of the candidate service.
// indexer may be nil when resume text extraction is disabled.
func NewCandidateService(
	candidateRepo candidate.Repository,
	files fsx.FileSystem,
	indexer candidate.ResumeIndexer,
) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
		files:         files,
		indexer:       indexer,
		now:           time.Now,
	}
}

// GetCandidate returns the candidate owned by userID. Only the owner and
// admins may read it.
func (s *CandidateService) GetCandidate(ctx context.Context, userID kernel.UserID, caller kernel.Identity) (*candidate.Candidate, error) {
	if !caller.IsAuthenticated() {
		return nil, candidate.ErrNotAuthenticated()
	}
	if caller.UserID != userID && caller.Role != kernel.RoleAdmin {
		return nil, candidate.ErrInsufficientPermissions().WithDetail("user_id", userID.String())
	}

	c, err := s.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SaveCandidate creates or updates the caller's candidate from a submitted
// payload. A payload without an id creates; one with an id must match the
// stored record.
func (s *CandidateService) SaveCandidate(ctx context.Context, p candidate.Payload, caller kernel.Identity) (*candidate.SaveResult, error) {
	if err := candidate.Authorize(caller); err != nil {
		return nil, err
	}
	if p.UserID != caller.UserID {
		return nil, candidate.ErrInsufficientPermissions().
			WithDetail("user_id", p.UserID.String())
	}

	existing, err := s.findExisting(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !p.CandidateID.IsEmpty() {
		if existing == nil {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", p.CandidateID.String())
		}
		if existing.ID != p.CandidateID {
			return nil, candidate.ErrInsufficientPermissions().WithDetail("candidate_id", p.CandidateID.String())
		}
	}

	resumeOnFile := existing != nil && existing.HasResume()
	if errs := candidate.ValidateAll(p.Record(), resumeOnFile); !errs.Empty() {
		return nil, candidate.ErrFormInvalid(errs)
	}

	var resumeType string
	if !p.Resume.IsEmpty() {
		if p.Resume.Size() > candidate.MaxResumeSize {
			return nil, candidate.ErrResumeTooLarge().
				WithDetail("size", p.Resume.Size()).
				WithDetail("max_size", candidate.MaxResumeSize)
		}
		resumeType = candidate.NormalizeResumeType(p.Resume.ContentType, p.Resume.FileName)
		if !candidate.IsAllowedResumeType(resumeType) {
			return nil, candidate.ErrInvalidResumeType().WithDetail("content_type", p.Resume.ContentType)
		}
	}

	now := s.now()
	c := existing
	created := c == nil
	if created {
		c = &candidate.Candidate{
			ID:        kernel.NewCandidateID(uuid.NewString()),
			UserID:    caller.UserID,
			CreatedAt: now,
		}
	}

	values := make(map[candidate.FieldName]string, len(p.Values))
	for name, v := range p.Values {
		values[name] = strings.TrimSpace(v)
	}
	c.ApplyValues(values)

	var (
		uploadedPath string
		previousPath string
	)
	if resumeType != "" {
		uploadedPath = s.files.Join(resumeDir, caller.UserID.String(), uuid.NewString()+resumeExtension(resumeType, p.Resume.FileName))
		if err := s.files.WriteFile(ctx, uploadedPath, p.Resume.Data); err != nil {
			return nil, candidate.ErrResumeUploadFailed().WithCause(err)
		}
		previousPath = c.ResumePath
		att := *p.Resume
		att.ContentType = resumeType
		c.AttachResume(uploadedPath, kernel.BucketURL(s.files.URL(uploadedPath)), &att)
	}
	c.UpdatedAt = now

	if created {
		err = s.candidateRepo.Create(ctx, c)
	} else {
		err = s.candidateRepo.Update(ctx, c)
	}
	if err != nil {
		if uploadedPath != "" {
			if delErr := s.files.DeleteFile(ctx, uploadedPath); delErr != nil {
				logx.Warnf("Failed to clean up orphaned resume %s: %v", uploadedPath, delErr)
			}
		}
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		return nil, candidate.ErrSaveFailed().WithCause(err)
	}

	if uploadedPath != "" {
		if previousPath != "" && previousPath != uploadedPath {
			if delErr := s.files.DeleteFile(ctx, previousPath); delErr != nil {
				logx.Warnf("Failed to delete replaced resume %s: %v", previousPath, delErr)
			}
		}
		if s.indexer != nil {
			if err := s.indexer.ScheduleExtraction(ctx, c); err != nil {
				logx.Errorf("Failed to schedule resume extraction for candidate %s: %v", c.ID, err)
			}
		}
	}

	logx.Infof("Candidate %s saved for user %s (created=%t)", c.ID, c.UserID, created)
	return &candidate.SaveResult{Candidate: c, Created: created}, nil
}

func (s *CandidateService) findExisting(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	c, err := s.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errx.IsCode(err, candidate.CodeCandidateNotFound) {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to load candidate", errx.TypeInternal)
	}
	return c, nil
}

func resumeExtension(contentType, fileName string) string {
	switch contentType {
	case candidate.ResumeTypePDF:
		return ".pdf"
	case candidate.ResumeTypeDOCX:
		return ".docx"
	case candidate.ResumeTypeText:
		return ".txt"
	}
	return strings.ToLower(filepath.Ext(fileName))
}

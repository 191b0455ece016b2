package resumeapi

import (
	"context"

	"github.com/Abraxas-365/seeker/pkg/iam/auth"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/resume"
	"github.com/Abraxas-365/seeker/recruitment/resume/resumesrv"
	"github.com/gofiber/fiber/v2"
)

// CandidateFinder looks up the candidate whose resume should be processed
type CandidateFinder interface {
	GetByUserID(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error)
}

type ResumeHandlers struct {
	service    *resumesrv.Service
	candidates CandidateFinder
}

func NewResumeHandlers(service *resumesrv.Service, candidates CandidateFinder) *ResumeHandlers {
	return &ResumeHandlers{
		service:    service,
		candidates: candidates,
	}
}

// RegisterRoutes mounts the admin-only extraction endpoints
func (h *ResumeHandlers) RegisterRoutes(app fiber.Router, authMiddleware fiber.Handler) {
	resumes := app.Group("/api/resumes", authMiddleware, auth.RequireRole(kernel.RoleAdmin))

	resumes.Get("/jobs/stats", auth.RequireScope(auth.ScopeResumesRead), h.GetJobStats)       // Queue depth
	resumes.Post("/:user_id/extract", auth.RequireScope(auth.ScopeResumesExtract), h.Extract) // Re-run extraction
}

// GetJobStats reports the extraction queue depth
// GET /api/resumes/jobs/stats
func (h *ResumeHandlers) GetJobStats(c *fiber.Ctx) error {
	stats, err := h.service.QueueStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Extract queues the stored resume of a user's candidate for text extraction
// POST /api/resumes/:user_id/extract
func (h *ResumeHandlers) Extract(c *fiber.Ctx) error {
	userID := kernel.NewUserID(c.Params("user_id"))

	found, err := h.candidates.GetByUserID(c.Context(), userID)
	if err != nil {
		return err
	}
	if found.ResumePath == "" {
		return resume.ErrNoResume().WithDetail("candidate_id", found.ID.String())
	}

	if err := h.service.ScheduleExtraction(c.Context(), found); err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":      "Resume queued for extraction",
		"candidate_id": found.ID,
		"status":       resume.JobStatusPending,
	})
}

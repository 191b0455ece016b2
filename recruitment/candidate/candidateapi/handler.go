package candidateapi

import (
	"github.com/Abraxas-365/seeker/pkg/iam/auth"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidatesrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes mounts /candidate behind the bearer middleware
func (h *Handlers) RegisterRoutes(app fiber.Router, authMiddleware fiber.Handler) {
	group := app.Group("/candidate", authMiddleware)
	group.Get("/:id", auth.RequireScope(auth.ScopeCandidatesRead), h.GetCandidate)
	group.Post("/",
		auth.RequireRole(kernel.RoleJobSeeker),
		auth.RequireScope(auth.ScopeCandidatesWrite),
		h.SaveCandidate,
	)
}

// GetCandidate returns the candidate owned by a user
// GET /candidate/:id where id is the owning user id
func (h *Handlers) GetCandidate(c *fiber.Ctx) error {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		return candidate.ErrNotAuthenticated()
	}

	userID := kernel.NewUserID(c.Params("id"))
	if userID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	found, err := h.service.GetCandidate(c.Context(), userID, identity)
	if err != nil {
		return err
	}
	return c.JSON(found)
}

// SaveCandidate creates or updates the caller's candidate from a multipart
// form. Responds 201 on create and 200 on update with the stored record.
// POST /candidate
func (h *Handlers) SaveCandidate(c *fiber.Ctx) error {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		return candidate.ErrNotAuthenticated()
	}

	form, err := c.MultipartForm()
	if err != nil {
		return candidate.ErrInvalidPayload().WithDetail("parse_error", err.Error())
	}

	payload, err := candidate.DecodePayload(form)
	if err != nil {
		return err
	}

	result, err := h.service.SaveCandidate(c.Context(), payload, identity)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(result.Candidate)
}

package profileapi

import (
	"github.com/Abraxas-365/seeker/pkg/iam/auth"
	"github.com/Abraxas-365/seeker/recruitment/profile"
	"github.com/Abraxas-365/seeker/recruitment/profile/profilesrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *profilesrv.Service
}

func NewHandlers(service *profilesrv.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts /api/profile behind the bearer middleware
func (h *Handlers) RegisterRoutes(app fiber.Router, authMiddleware fiber.Handler) {
	group := app.Group("/api/profile", authMiddleware)
	group.Get("/me", auth.RequireScope(auth.ScopeProfileRead), h.GetMe)
}

// GetMe returns the authenticated user's profile
// GET /api/profile/me
func (h *Handlers) GetMe(c *fiber.Ctx) error {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		return profile.ErrNotAuthenticated()
	}

	p, err := h.service.GetMe(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

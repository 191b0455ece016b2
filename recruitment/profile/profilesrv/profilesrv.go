package profilesrv

import (
	"context"

	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/profile"
)

type Service struct {
	repo profile.Repository
}

func NewService(repo profile.Repository) *Service {
	return &Service{repo: repo}
}

// GetMe returns the caller's own profile
func (s *Service) GetMe(ctx context.Context, caller kernel.Identity) (*profile.Profile, error) {
	if !caller.IsAuthenticated() {
		return nil, profile.ErrNotAuthenticated()
	}
	return s.repo.GetByID(ctx, caller.UserID)
}

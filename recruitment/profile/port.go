package profile

import (
	"context"

	"github.com/Abraxas-365/seeker/pkg/kernel"
)

type Repository interface {
	// GetByID retrieves the profile of a user
	GetByID(ctx context.Context, id kernel.UserID) (*Profile, error)
}

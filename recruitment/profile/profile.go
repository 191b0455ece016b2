package profile

import (
	"time"

	"github.com/Abraxas-365/seeker/pkg/kernel"
)

// Profile is the account record of a user
type Profile struct {
	ID        kernel.UserID `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Email     string        `db:"email" json:"email"`
	Mobile    string        `db:"mobile" json:"mobile"`
	Avatar    string        `db:"avatar" json:"avatar"`
	Role      kernel.Role   `db:"role" json:"role"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// Identity returns who this profile authenticates as
func (p *Profile) Identity() kernel.Identity {
	if p == nil {
		return kernel.Identity{}
	}
	return kernel.Identity{UserID: p.ID, Role: p.Role}
}

func (p *Profile) IsJobSeeker() bool {
	return p.Identity().IsJobSeeker()
}

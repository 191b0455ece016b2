package candidate

import "github.com/Abraxas-365/seeker/pkg/kernel"

// Authorize gates the job-seeker screens. Both failures are auth-typed so
// callers can redirect to login with errx.IsAuth.
func Authorize(identity kernel.Identity) error {
	if !identity.IsAuthenticated() {
		return ErrNotAuthenticated()
	}
	if identity.Role != kernel.RoleJobSeeker {
		return ErrRoleNotAllowed().WithDetail("role", identity.Role.String())
	}
	return nil
}

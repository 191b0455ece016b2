package auth

import (
	"strings"

	"github.com/Abraxas-365/seeker/pkg/kernel"
)

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - job-seeker profiles
// ============================================================================

const (
	// Candidate scopes
	ScopeCandidatesAll   = "candidates:*"
	ScopeCandidatesRead  = "candidates:read"
	ScopeCandidatesWrite = "candidates:write" // Create or update own profile

	// Profile scopes
	ScopeProfileAll  = "profile:*"
	ScopeProfileRead = "profile:read"

	// Resume scopes
	ScopeResumesAll     = "resumes:*"
	ScopeResumesRead    = "resumes:read"
	ScopeResumesUpload  = "resumes:upload"
	ScopeResumesExtract = "resumes:extract" // Re-run text extraction
)

// DomainScopeCategories organizes domain-specific scopes
var DomainScopeCategories = map[string][]string{
	"Candidates": {
		ScopeCandidatesAll,
		ScopeCandidatesRead,
		ScopeCandidatesWrite,
	},
	"Profile": {
		ScopeProfileAll,
		ScopeProfileRead,
	},
	"Resumes": {
		ScopeResumesAll,
		ScopeResumesRead,
		ScopeResumesUpload,
		ScopeResumesExtract,
	},
}

// RoleScopes is the scope set granted to each role
var RoleScopes = map[kernel.Role][]string{
	kernel.RoleJobSeeker: {
		ScopeCandidatesRead,
		ScopeCandidatesWrite,
		ScopeProfileRead,
		ScopeResumesRead,
		ScopeResumesUpload,
	},
	kernel.RoleEmployer: {
		ScopeProfileRead,
		ScopeCandidatesRead,
		ScopeResumesRead,
	},
	kernel.RoleAdmin: {
		ScopeCandidatesAll,
		ScopeProfileAll,
		ScopeResumesAll,
	},
}

// ScopesForRole returns the scopes of role, nil for unknown roles
func ScopesForRole(role kernel.Role) []string {
	return RoleScopes[role]
}

// HasScope reports whether granted covers required, honouring "resource:*"
func HasScope(granted []string, required string) bool {
	resource, _, _ := strings.Cut(required, ":")
	for _, s := range granted {
		if s == required || s == resource+":*" {
			return true
		}
	}
	return false
}

// AllScopes flattens DomainScopeCategories
func AllScopes() []string {
	var out []string
	for _, scopes := range DomainScopeCategories {
		out = append(out, scopes...)
	}
	return out
}

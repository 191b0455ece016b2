package profile

import (
	"net/http"

	"github.com/Abraxas-365/seeker/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PROFILE")

var (
	CodeProfileNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile not found")
	CodeNotAuthenticated = ErrRegistry.Register("NOT_AUTHENTICATED", errx.TypeUnauthorized, http.StatusUnauthorized, "User not authenticated")
	CodeRoleNotAllowed   = ErrRegistry.Register("ROLE_NOT_ALLOWED", errx.TypeAuthorization, http.StatusForbidden, "Only job seekers can view this profile")
	CodeFetchFailed      = ErrRegistry.Register("FETCH_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to fetch profile")
	CodeRenderFailed     = ErrRegistry.Register("RENDER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to render profile")
)

func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

func ErrNotAuthenticated() *errx.Error {
	return ErrRegistry.New(CodeNotAuthenticated)
}

func ErrRoleNotAllowed() *errx.Error {
	return ErrRegistry.New(CodeRoleNotAllowed)
}

func ErrFetchFailed() *errx.Error {
	return ErrRegistry.New(CodeFetchFailed)
}

func ErrRenderFailed() *errx.Error {
	return ErrRegistry.New(CodeRenderFailed)
}

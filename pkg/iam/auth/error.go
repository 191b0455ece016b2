package auth

import (
	"net/http"

	"github.com/Abraxas-365/seeker/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken      = ErrRegistry.Register("MISSING_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Missing authorization header")
	CodeInvalidFormat     = ErrRegistry.Register("INVALID_FORMAT", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid authorization format")
	CodeInvalidToken      = ErrRegistry.Register("INVALID_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid or expired token")
	CodeTokenGeneration   = ErrRegistry.Register("TOKEN_GENERATION", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
	CodeForbiddenRole     = ErrRegistry.Register("FORBIDDEN_ROLE", errx.TypeAuthorization, http.StatusForbidden, "Role not allowed")
	CodeInsufficientScope = ErrRegistry.Register("INSUFFICIENT_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "Insufficient scope")
)

func ErrMissingToken() *errx.Error      { return ErrRegistry.New(CodeMissingToken) }
func ErrInvalidFormat() *errx.Error     { return ErrRegistry.New(CodeInvalidFormat) }
func ErrInvalidToken() *errx.Error      { return ErrRegistry.New(CodeInvalidToken) }
func ErrTokenGeneration() *errx.Error   { return ErrRegistry.New(CodeTokenGeneration) }
func ErrForbiddenRole() *errx.Error     { return ErrRegistry.New(CodeForbiddenRole) }
func ErrInsufficientScope() *errx.Error { return ErrRegistry.New(CodeInsufficientScope) }

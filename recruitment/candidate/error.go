package candidate

import (
	"net/http"

	"github.com/Abraxas-365/seeker/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeCandidateNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeNotAuthenticated        = ErrRegistry.Register("NOT_AUTHENTICATED", errx.TypeUnauthorized, http.StatusUnauthorized, "User not authenticated")
	CodeRoleNotAllowed          = ErrRegistry.Register("ROLE_NOT_ALLOWED", errx.TypeAuthorization, http.StatusForbidden, "Only job seekers can manage a candidate profile")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeValidationFailed        = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Form validation failed")
	CodeInvalidField            = ErrRegistry.Register("INVALID_FIELD", errx.TypeValidation, http.StatusBadRequest, "Unknown form field")
	CodeInvalidPayload          = ErrRegistry.Register("INVALID_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeUnsupportedSchema       = ErrRegistry.Register("UNSUPPORTED_SCHEMA", errx.TypeValidation, http.StatusBadRequest, "Unsupported payload schema version")
	CodeInvalidResumeType       = ErrRegistry.Register("INVALID_RESUME_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid file type. Supported: PDF, DOCX, TXT")
	CodeResumeTooLarge          = ErrRegistry.Register("RESUME_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "File size exceeds 10MB limit")
	CodeResumeUploadFailed      = ErrRegistry.Register("RESUME_UPLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store resume")
	CodeSubmissionInFlight      = ErrRegistry.Register("SUBMISSION_IN_FLIGHT", errx.TypeConflict, http.StatusConflict, "A submission is already in progress")
	CodeSessionClosed           = ErrRegistry.Register("SESSION_CLOSED", errx.TypeBusiness, http.StatusGone, "Editing session already closed")
	CodeBackendUnavailable      = ErrRegistry.Register("BACKEND_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Backend request failed")
	CodeSaveFailed              = ErrRegistry.Register("SAVE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to save candidate")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrNotAuthenticated() *errx.Error {
	return ErrRegistry.New(CodeNotAuthenticated)
}

func ErrRoleNotAllowed() *errx.Error {
	return ErrRegistry.New(CodeRoleNotAllowed)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrInvalidField() *errx.Error {
	return ErrRegistry.New(CodeInvalidField)
}

func ErrInvalidPayload() *errx.Error {
	return ErrRegistry.New(CodeInvalidPayload)
}

func ErrUnsupportedSchema() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedSchema)
}

func ErrInvalidResumeType() *errx.Error {
	return ErrRegistry.New(CodeInvalidResumeType)
}

func ErrResumeTooLarge() *errx.Error {
	return ErrRegistry.New(CodeResumeTooLarge)
}

func ErrResumeUploadFailed() *errx.Error {
	return ErrRegistry.New(CodeResumeUploadFailed)
}

func ErrSubmissionInFlight() *errx.Error {
	return ErrRegistry.New(CodeSubmissionInFlight)
}

func ErrSessionClosed() *errx.Error {
	return ErrRegistry.New(CodeSessionClosed)
}

func ErrBackendUnavailable() *errx.Error {
	return ErrRegistry.New(CodeBackendUnavailable)
}

func ErrSaveFailed() *errx.Error {
	return ErrRegistry.New(CodeSaveFailed)
}

// ErrFormInvalid wraps field errors into a VALIDATION_FAILED error
func ErrFormInvalid(errs ValidationErrors) *errx.Error {
	return ErrValidationFailed().WithDetails(errs.Details())
}

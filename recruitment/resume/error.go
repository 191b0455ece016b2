package resume

import (
	"net/http"

	"github.com/Abraxas-365/seeker/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

var (
	CodeUnsupportedType    = ErrRegistry.Register("UNSUPPORTED_TYPE", errx.TypeValidation, http.StatusBadRequest, "Unsupported resume file type")
	CodeExtractionFailed   = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to extract resume text")
	CodeQueueEnqueueFailed = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to queue resume extraction")
	CodeJobRetryFailed     = ErrRegistry.Register("JOB_RETRY_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to schedule extraction retry")
	CodeJobFailed          = ErrRegistry.Register("JOB_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Resume extraction failed permanently")
	CodeNoResume           = ErrRegistry.Register("NO_RESUME", errx.TypeBusiness, http.StatusConflict, "Candidate has no stored resume")
)

func ErrUnsupportedType() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedType)
}

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrJobRetryFailed() *errx.Error {
	return ErrRegistry.New(CodeJobRetryFailed)
}

func ErrJobFailed() *errx.Error {
	return ErrRegistry.New(CodeJobFailed)
}

func ErrNoResume() *errx.Error {
	return ErrRegistry.New(CodeNoResume)
}

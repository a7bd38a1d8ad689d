package job

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeInvalidFilter      = ErrRegistry.Register("INVALID_FILTER", errx.TypeValidation, http.StatusBadRequest, "Invalid search parameters")
	CodeFilterInvariant    = ErrRegistry.Register("FILTER_INVARIANT", errx.TypeValidation, http.StatusBadRequest, "Search parameters are inconsistent")
	CodeInvalidPagination  = ErrRegistry.Register("INVALID_PAGINATION", errx.TypeValidation, http.StatusBadRequest, "Invalid pagination parameters")
	CodeBackendUnavailable = ErrRegistry.Register("BACKEND_UNAVAILABLE", errx.TypeUnavailable, http.StatusServiceUnavailable, "Job search is temporarily unavailable")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

// ErrInvalidFilter lists every violated field under details.violations
func ErrInvalidFilter(violations Violations) *errx.Error {
	return ErrRegistry.New(CodeInvalidFilter).WithDetail("violations", violations)
}

func ErrFilterInvariant() *errx.Error {
	return ErrRegistry.New(CodeFilterInvariant)
}

func ErrInvalidPagination() *errx.Error {
	return ErrRegistry.New(CodeInvalidPagination)
}

// ErrBackendUnavailable keeps the store failure as cause only; nothing about
// the query reaches the client
func ErrBackendUnavailable(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeBackendUnavailable, cause)
}

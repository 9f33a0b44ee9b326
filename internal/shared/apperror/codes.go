package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"

	// Server errors (5xx)
	CodeConfigurationError = "CONFIGURATION_ERROR"
	CodeUpstreamError      = "UPSTREAM_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	)
}

// Configuration membuat error untuk kredensial/setting yang hilang,
// lengkap dengan petunjuk perbaikan untuk operator.
func Configuration(what, hint string) *AppError {
	return New(
		CodeConfigurationError,
		fmt.Sprintf("%s is not configured. %s", what, hint),
		http.StatusInternalServerError,
	)
}

// Upstream membawa pesan dan status HTTP dari provider eksternal.
func Upstream(message string, status int) *AppError {
	if message == "" {
		message = "Upstream provider returned an error"
	}
	if status < 400 {
		status = http.StatusBadGateway
	}
	return New(CodeUpstreamError, message, status)
}

package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrNotAuthenticated  = errors.New("not_authenticated")
	ErrNotFound          = errors.New("not_found")
	ErrForbidden         = errors.New("forbidden")
	ErrReportLocked      = errors.New("report_locked")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrValidation        = errors.New("validation_error")
	ErrUnknownCategory   = errors.New("unknown_category")
	ErrMissingGPSFix     = errors.New("missing_gps_fix")

	// For network/backend unavailability. Callers surface it and may
	// retry manually; nothing in the service layer retries.
	ErrTransientIO = errors.New("transient_io")

	// Terminal PDF pipeline failure (malformed report data etc.).
	ErrRenderFailure = errors.New("render_failure")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError pairs a sentinel with its HTTP shape in one place so
// services can fail with a single value.
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message, Err: err}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}

package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrHTTPClient       = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")
	ErrBusy             = new(ErrCodeBusy, "another action is in flight")

	// Pipeline errors. Rasterization failure is fatal to the current action
	// and routes delivery to the text-only tier. Normalization and upload
	// failures are non-fatal and degrade to transient-only state.
	ErrNormalization = new(ErrCodeNormalization, "media normalization error")
	ErrRasterization = new(ErrCodeRasterization, "rasterization error")
	ErrUpload        = new(ErrCodeUpload, "attachment upload error")

	// Share outcomes that are not failures. Cancellation means the user chose
	// not to share; unsupported triggers the next cascade tier.
	ErrShareCancelled   = new(ErrCodeShareCancelled, "share cancelled by user")
	ErrShareUnsupported = new(ErrCodeShareUnsupported, "share capability unsupported")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:       http.StatusInternalServerError,
		ErrDatabase:         http.StatusInternalServerError,
		ErrNotFound:         http.StatusNotFound,
		ErrAlreadyExists:    http.StatusConflict,
		ErrValidation:       http.StatusBadRequest,
		ErrInvalidOperation: http.StatusBadRequest,
		ErrSystem:           http.StatusInternalServerError,
		ErrBusy:             http.StatusConflict,
		ErrNormalization:    http.StatusInternalServerError,
		ErrRasterization:    http.StatusInternalServerError,
		ErrUpload:           http.StatusInternalServerError,
	}
)

const (
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeDatabase         = "database_error"
	ErrCodeBusy             = "busy"
	ErrCodeNormalization    = "normalization_error"
	ErrCodeRasterization    = "rasterization_error"
	ErrCodeUpload           = "upload_error"
	ErrCodeShareCancelled   = "share_cancelled"
	ErrCodeShareUnsupported = "share_unsupported"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsBusy checks if an error means an action is already in flight
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsRasterization checks if an error is a rasterization failure
func IsRasterization(err error) bool {
	return errors.Is(err, ErrRasterization)
}

// IsShareCancelled checks if the user cancelled a native share. Cancellation
// is a distinct terminal outcome, never a trigger for cascade fallback.
func IsShareCancelled(err error) bool {
	return errors.Is(err, ErrShareCancelled)
}

// IsShareUnsupported checks if the share capability is unavailable, which
// routes the cascade to its next tier.
func IsShareUnsupported(err error) bool {
	return errors.Is(err, ErrShareUnsupported)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}

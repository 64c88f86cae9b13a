package errors

import "github.com/cockroachdb/errors"

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information. Display carries the user-facing
// hint, which for pipeline errors is the Portuguese guidance text shown in
// the workshop UI.
type ErrorDetail struct {
	Code          string         `json:"code,omitempty"`
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// CodeFromErr resolves the machine-readable code of a marked error, empty
// when the error carries no known mark.
func CodeFromErr(err error) string {
	for _, sentinel := range []error{
		ErrBusy, ErrShareCancelled, ErrShareUnsupported,
		ErrNormalization, ErrRasterization, ErrUpload,
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrInvalidOperation, ErrHTTPClient, ErrDatabase, ErrSystem,
	} {
		if errors.Is(err, sentinel) {
			if ie, ok := sentinel.(*InternalError); ok {
				return ie.Code
			}
		}
	}
	return ""
}

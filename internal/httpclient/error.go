package httpclient

import (
	"encoding/json"
	goerrors "errors"

	"github.com/oficinago/oficinago/internal/errors"
)

// Error is a non-2xx HTTP response surfaced as an error, keeping the status
// and raw body so callers can decide how to degrade.
type Error struct {
	*errors.InternalError
	StatusCode int
	Response   []byte
}

func (e *Error) Unwrap() error {
	return e.InternalError.Unwrap()
}

func (e *Error) Error() string {
	return e.InternalError.Error()
}

// APIMessage extracts the human-readable message from a Graph-style error
// body (`{"error":{"message":...}}`). Empty when the body has another shape.
func (e *Error) APIMessage() string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(e.Response, &payload); err != nil {
		return ""
	}
	return payload.Error.Message
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) *Error {
	return &Error{
		InternalError: errors.New(errors.ErrCodeHTTPClient, "http client error"),
		StatusCode:    statusCode,
		Response:      response,
	}
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if goerrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

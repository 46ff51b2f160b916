package errors

import (
	"fmt"
	"io"
)

// Error kinds for save stream conversion
var (
	// ErrVersionIsZero is returned when the header version field is 0
	ErrVersionIsZero = &SaveError{Code: "VERSION_IS_ZERO", Message: "header version is zero"}

	// ErrCompressionUnknown is returned when the header compression tag is outside {0,1}
	ErrCompressionUnknown = &SaveError{Code: "COMPRESSION_UNKNOWN", Message: "unknown compression tag"}

	// ErrUnexpectedEOF is returned when the stream ends inside a fixed-size field or chunk body
	ErrUnexpectedEOF = &SaveError{Code: "UNEXPECTED_EOF", Message: "unexpected end of stream"}

	// ErrIO is returned for any other underlying I/O failure
	ErrIO = &SaveError{Code: "IO_FAILURE", Message: "i/o failure"}
)

// SaveError represents a structured error in save stream conversion
type SaveError struct {
	Code    string                 // Error code for programmatic handling
	Message string                 // Human-readable error message
	Cause   error                  // Underlying error, if any
	Details map[string]interface{} // Additional context
}

// Error implements the error interface
func (e *SaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("[%s] %s (details: %v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *SaveError) Unwrap() error {
	return e.Cause
}

// WithCause adds a cause to the error
func (e *SaveError) WithCause(cause error) *SaveError {
	return &SaveError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
		Details: e.Details,
	}
}

// WithDetail adds a detail key-value pair to the error
func (e *SaveError) WithDetail(key string, value interface{}) *SaveError {
	details := make(map[string]interface{})
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &SaveError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Details: details,
	}
}

// FromIO classifies an underlying I/O error. End-of-stream conditions inside
// an expected field or chunk body become ErrUnexpectedEOF; everything else
// (broken pipe, device error, corrupt compressed data) becomes ErrIO with the
// original error attached as cause.
func FromIO(err error) *SaveError {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrUnexpectedEOF
	}
	return ErrIO.WithCause(err)
}

// IsSaveError checks if an error is a SaveError
func IsSaveError(err error) bool {
	_, ok := err.(*SaveError)
	return ok
}

// GetErrorCode extracts the error code from a SaveError
func GetErrorCode(err error) string {
	if saveErr, ok := err.(*SaveError); ok {
		return saveErr.Code
	}
	return ""
}

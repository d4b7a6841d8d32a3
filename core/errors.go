package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// BackendError is returned when the academy REST API answers with a non-2xx status.
type BackendError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func NewBackendError(code int, endpoint, msg string) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &BackendError{StatusCode: code, Endpoint: endpoint, Message: msg}
}

func (err BackendError) Error() string {
	return fmt.Sprintf("backend %s: %d %s", err.Endpoint, err.StatusCode, err.Message)
}

// IsBackendNotFound reports whether err originates from a 404 answer of the backend.
func IsBackendNotFound(err error) bool {
	bErr, ok := errors.Cause(err).(*BackendError)
	return ok && bErr.StatusCode == http.StatusNotFound
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

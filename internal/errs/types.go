package errs

import (
	"encoding/json"
	"strings"
)

// HTTPError is the custom error type for client-visible failures.
//
// It implements the `error` interface via Error() and serializes to the
// response body every form endpoint uses:
//
//	{ "success": false, "error": "Failed to save submission" }
//	{ "success": false, "errors": { "email": "Valid email is required" } }
type HTTPError struct {
	// Code is a machine-friendly code (e.g. "BAD_REQUEST"), used in logs only.
	Code string `json:"-"`

	// Message is the human-friendly message sent as "error".
	Message string `json:"-"`

	// Status is the HTTP status code.
	Status int `json:"-"`

	// Errors holds field-level validation messages keyed by field name.
	// When present it replaces Message in the response body.
	Errors map[string]string `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It only compares the type, not Code/Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

type responseBody struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// MarshalJSON renders the client-facing body.
func (e HTTPError) MarshalJSON() ([]byte, error) {
	body := responseBody{Success: false}
	if len(e.Errors) > 0 {
		body.Errors = e.Errors
	} else {
		body.Error = e.Message
	}

	return json.Marshal(body)
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

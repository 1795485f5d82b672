package errs

import (
	"net/http"
)

// InternalServerErrorMessage is the only text a client sees for an
// unexpected failure.
const InternalServerErrorMessage = "Internal server error"

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// errors carries one message per failing field; it may be nil when the
// whole request is rejected with a single message.
func NewBadRequestError(message string, errors map[string]string) *HTTPError {
	return &HTTPError{
		// http.StatusText(400) => "Bad Request" => "BAD_REQUEST"
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest)),
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewValidationError wraps per-field messages into a 400 response.
func NewValidationError(errors map[string]string) *HTTPError {
	return NewBadRequestError("Validation failed", errors)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is deliberately generic. Use WithMessage for the few
// 500s whose text is part of the endpoint contract.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: InternalServerErrorMessage,
		Status:  http.StatusInternalServerError,
	}
}

// FromStatus builds an HTTPError for a bare status code, using the
// standard status text as message.
func FromStatus(status int) *HTTPError {
	if status >= http.StatusInternalServerError {
		return NewInternalServerError()
	}

	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: http.StatusText(status),
		Status:  status,
	}
}

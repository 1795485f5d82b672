package errs

import (
	"errors"
)

// Kind classifies a failure on one of the fallible steps of a relay.
//
// Kinds never reach the client; the global error handler is the single
// place that turns them into an HTTP status.
type Kind uint8

const (
	KindUnknown Kind = iota

	// KindRequestDecode: the inbound body was not a JSON object.
	KindRequestDecode

	// KindUpstreamTransport: the upstream call could not be made or timed out.
	KindUpstreamTransport

	// KindUpstreamDecode: the upstream answered with something other than JSON.
	KindUpstreamDecode

	// KindUpstreamRejected: the upstream answered {"success": false}.
	KindUpstreamRejected
)

func (k Kind) String() string {
	switch k {
	case KindRequestDecode:
		return "request_decode"
	case KindUpstreamTransport:
		return "upstream_transport"
	case KindUpstreamDecode:
		return "upstream_decode"
	case KindUpstreamRejected:
		return "upstream_rejected"
	default:
		return "unknown"
	}
}

// Error tags an underlying error with its Kind.
type Error struct {
	Kind Kind
	Err  error
}

// E tags err with kind.
func E(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain,
// or KindUnknown when there is none.
func KindOf(err error) Kind {
	var kindErr *Error
	if errors.As(err, &kindErr) {
		return kindErr.Kind
	}
	return KindUnknown
}

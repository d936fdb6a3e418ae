package venue

import (
	"errors"
	"fmt"
)

// Kind is the venue-client error taxonomy — a classification,
// not a concrete error type, since callers switch on Kind rather than type
// assert on a specific struct.
type Kind string

const (
	TransportFailure Kind = "transport_failure"
	ParseFailure Kind = "parse_failure"
	NotFound Kind = "not_found"
	RateLimited Kind = "rate_limited"
	ValidationFailure Kind = "validation_failure"
	AuthFailure Kind = "auth_failure"
)

// Error carries a Kind alongside the wrapped cause, so callers can decide
// whether to retry, log-and-recover, or surface the failure.
type Error struct {
	Kind Kind
	Venue string
	Op string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Venue, e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Venue, e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(venue, op string, kind Kind, cause error) *Error {
	return &Error{Venue: venue, Op: op, Kind: kind, Cause: cause}
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error,
// defaulting to TransportFailure for unrecognized errors.
func KindOf(err error) Kind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return TransportFailure
}

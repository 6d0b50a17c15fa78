// Package apperr defines this service's error taxonomy and maps it to gRPC
// status codes at the RPC boundary. Event-handler failures are never mapped
// to a status: the dispatcher uses the Kind only to decide between acking an
// InvalidPayload message and leaving any other failure unacked so the broker
// redelivers it (see internal/dispatcher).
package apperr

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind identifies one of the taxonomy's error classes.
type Kind int

const (
	// KindInvalidPayload: decode failed, required field missing, unknown
	// enum value. Handlers ack and drop; never surfaces to an RPC caller.
	KindInvalidPayload Kind = iota
	// KindPublishRejected: the broker did not ACK a publish.
	KindPublishRejected
	// KindCachedStateInvalid: the status cache returned a string with no
	// known mapping to a DeliveryStatus.
	KindCachedStateInvalid
	// KindTransitionRejected: the state machine refused the requested
	// transition.
	KindTransitionRejected
	// KindOutOfRange: haversine distance fell outside [0, 25] km.
	KindOutOfRange
	// KindNotFound: a Store lookup found no row.
	KindNotFound
	// KindAlreadyExists: a Store insert collided on a unique key.
	KindAlreadyExists
	// KindInvalidArgument: a caller-supplied argument failed validation.
	KindInvalidArgument
	// KindTransport: the broker, cache, or database is unavailable.
	KindTransport
)

// Error pairs a Kind with a message, carrying enough context to map onto
// either a gRPC status or a dispatcher ack/nack decision.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Msg + ": " + e.err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.err }

// New constructs an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an Error of the given kind around an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, err: cause}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ToStatus maps an Error to the gRPC status the RPC surface returns. Errors
// that don't originate from this package map to codes.Internal, matching the
// taxonomy's "TransportError ... surface as Internal for user-facing RPCs"
// rule.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}
	switch e.Kind {
	case KindInvalidArgument:
		return status.Error(codes.InvalidArgument, e.Msg)
	case KindTransitionRejected:
		return status.Error(codes.FailedPrecondition, e.Msg)
	case KindNotFound:
		return status.Error(codes.NotFound, e.Msg)
	case KindCachedStateInvalid, KindOutOfRange, KindTransport, KindPublishRejected, KindInvalidPayload, KindAlreadyExists:
		return status.Error(codes.Internal, e.Msg)
	default:
		return status.Error(codes.Internal, e.Msg)
	}
}

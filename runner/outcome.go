package runner

import (
	"errors"
	"fmt"
)

// OutcomeKind tags how a run resolved.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	ProtocolFailure
	TransportFailure
	DecodeFailure
	// RenderFailure means the payload arrived fine but could not be drawn.
	RenderFailure
	// DispatchFailure is a panic raised while building or sending the request.
	DispatchFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case ProtocolFailure:
		return "protocol"
	case TransportFailure:
		return "transport"
	case DecodeFailure:
		return "decode"
	case RenderFailure:
		return "render"
	case DispatchFailure:
		return "dispatch"
	default:
		return "unknown"
	}
}

// Outcome is the resolution of a single dispatch. Exactly one of Result
// (Success) or Message (every failure kind) is meaningful.
type Outcome struct {
	Kind    OutcomeKind
	Status  int
	Result  *RunResult
	Message string
}

// UplinkErrorMessage is shown for a non-2xx response without an error field.
func UplinkErrorMessage(status int) string {
	return fmt.Sprintf("A communications uplink error occurred [%d]", status)
}

// Succeeded wraps a decoded result.
func Succeeded(status int, result *RunResult) Outcome {
	return Outcome{Kind: Success, Status: status, Result: result}
}

// ProtocolFailed prefers the service supplied error text and falls back to
// a message carrying the status code.
func ProtocolFailed(status int, payload ErrorPayload) Outcome {
	msg := payload.Error
	if msg == "" {
		msg = UplinkErrorMessage(status)
	}
	return Outcome{Kind: ProtocolFailure, Status: status, Message: msg}
}

// TransportFailed reports a request that never produced a response.
func TransportFailed(err error) Outcome {
	return Outcome{Kind: TransportFailure, Message: err.Error()}
}

// DecodeFailed reports a response body that was not the expected JSON.
func DecodeFailed(status int, err error) Outcome {
	return Outcome{Kind: DecodeFailure, Status: status, Message: err.Error()}
}

// RenderFailed reports a renderer error or panic.
func RenderFailed(status int, cause any) Outcome {
	return Outcome{Kind: RenderFailure, Status: status, Message: fmt.Sprint(cause)}
}

// DispatchFailed reports a panic raised before a response was in hand.
func DispatchFailed(cause any) Outcome {
	return Outcome{Kind: DispatchFailure, Message: fmt.Sprint(cause)}
}

// OK reports whether the run succeeded.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// Err returns nil for a success and a *RunError otherwise.
func (o Outcome) Err() error {
	if o.OK() {
		return nil
	}
	return &RunError{Kind: o.Kind, Status: o.Status, Message: o.Message}
}

// RunError is the error form of a failed Outcome.
type RunError struct {
	Kind    OutcomeKind
	Status  int
	Message string
}

func (e *RunError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failure [%d]: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s failure: %s", e.Kind, e.Message)
}

var (
	ErrNullResult          = errors.New("response body is null")
	ErrMissingCorrelations = errors.New("response has no correlations list")
)

// ErrBusy is returned when a run is submitted while another is in flight.
var ErrBusy = errors.New("a run is already in progress")

package client

import "fmt"

// ValidationError is a local input error detected before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteError is a non-2xx response from an endpoint. Message carries the
// remote-provided error string when present, or an operation-specific
// fallback otherwise.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// TransportError is a network or response-parse failure. For every operation
// except Verify it is surfaced to the caller like a remote rejection.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

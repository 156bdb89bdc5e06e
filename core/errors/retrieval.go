// ABOUTME: Error types for headline retrieval attempts and terminal exhaustion
// ABOUTME: Lets the orchestrator decide which failures are worth retrying

package errors

import (
	"errors"
	"strings"
)

// DefaultRetrievalMessage is used when no underlying reason was recorded
const DefaultRetrievalMessage = "Unable to load news right now."

// TransportError is a timeout or network failure during a single attempt
type TransportError struct {
	Endpoint string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return e.Message
}

// Unwrap returns the underlying network error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is a structurally unusable response: a non-2xx status,
// a non-"ok" payload status, or a body that is not JSON.
type ProtocolError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	return e.Message
}

// ConfigurationError means an attempt could not be built, e.g. a missing credential.
// Retrying cannot fix it.
type ConfigurationError struct {
	Setting string
	Message string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return e.Message
}

// ExhaustedError is returned when no endpoint produced a usable result
type ExhaustedError struct {
	// Cause is the last failure recorded, may be nil
	Cause error

	// Hint is appended to the message, e.g. deployment guidance
	Hint string
}

// Error implements the error interface
func (e *ExhaustedError) Error() string {
	msg := DefaultRetrievalMessage
	if e.Cause != nil && e.Cause.Error() != "" {
		msg = e.Cause.Error()
	}
	if e.Hint == "" {
		return msg
	}
	return strings.TrimSpace(msg + " " + e.Hint)
}

// Unwrap returns the last recorded failure
func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether another attempt against the same endpoint could succeed
func IsRetryable(err error) bool {
	var transportErr *TransportError
	var protocolErr *ProtocolError
	return errors.As(err, &transportErr) || errors.As(err, &protocolErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsExhausted checks if an error is an ExhaustedError
func IsExhausted(err error) bool {
	var exhaustedErr *ExhaustedError
	return errors.As(err, &exhaustedErr)
}

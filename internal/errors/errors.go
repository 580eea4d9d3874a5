package errors

import (
	"errors"
	"fmt"
)

// SDKError is the base interface for all SDK errors.
type SDKError interface {
	error
	IsSDKError() bool
}

// Compile-time verification that all error types implement SDKError.
var (
	_ SDKError = (*SpawnError)(nil)
	_ SDKError = (*ProcessExitError)(nil)
	_ SDKError = (*StartupTimeoutError)(nil)
	_ SDKError = (*ConnectionError)(nil)
	_ SDKError = (*SubscriptionError)(nil)
	_ SDKError = (*EventParseError)(nil)
	_ SDKError = (*APIError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrServerStopped indicates the supervised server process has already stopped.
	ErrServerStopped = errors.New("server stopped")

	// ErrNotConnected indicates the client has no usable server endpoint.
	ErrNotConnected = errors.New("client not connected")

	// ErrSessionNotFound indicates the requested session does not exist on the server.
	ErrSessionNotFound = errors.New("session not found")
)

// SpawnError indicates the server executable could not be launched at all.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsSDKError implements SDKError.
func (e *SpawnError) IsSDKError() bool { return true }

// ProcessExitError indicates the server process exited before it became ready.
// Output holds whatever the process printed before dying.
type ProcessExitError struct {
	ExitCode int
	Output   string
}

func (e *ProcessExitError) Error() string {
	return fmt.Sprintf("server exited during startup (exit %d): %s", e.ExitCode, e.Output)
}

// IsSDKError implements SDKError.
func (e *ProcessExitError) IsSDKError() bool { return true }

// StartupTimeoutError indicates no readiness line appeared before the
// configured timeout and the supervisor killed the process.
type StartupTimeoutError struct {
	Timeout string
	Output  string
}

func (e *StartupTimeoutError) Error() string {
	return fmt.Sprintf("server startup timeout after %s, output: %s", e.Timeout, e.Output)
}

// IsSDKError implements SDKError.
func (e *StartupTimeoutError) IsSDKError() bool { return true }

// ConnectionError indicates a connection to a resolved endpoint could not be opened.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to server at %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsSDKError implements SDKError.
func (e *ConnectionError) IsSDKError() bool { return true }

// SubscriptionError indicates an event subscription lost its connection
// while it was still supposed to be running.
type SubscriptionError struct {
	Message string
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("event subscription failed: %s", e.Message)
}

// IsSDKError implements SDKError.
func (e *SubscriptionError) IsSDKError() bool { return true }

// EventParseError indicates the JSON payload inside a decoded event could not
// be parsed. Consumers skip these events rather than treating them as fatal.
type EventParseError struct {
	RawData string
	Err     error
}

func (e *EventParseError) Error() string {
	return fmt.Sprintf("failed to parse event payload: %v", e.Err)
}

func (e *EventParseError) Unwrap() error {
	return e.Err
}

// IsSDKError implements SDKError.
func (e *EventParseError) IsSDKError() bool { return true }

// APIError indicates the server answered a request with a non-2xx status.
type APIError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// IsSDKError implements SDKError.
func (e *APIError) IsSDKError() bool { return true }

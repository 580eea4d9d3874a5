package opencodesdk

import "github.com/wagiedev/opencode-sdk-go/internal/errors"

// Re-export error types from internal package

// SDKError is the base interface for all SDK errors.
type SDKError = errors.SDKError

// SpawnError indicates the server process could not be launched.
type SpawnError = errors.SpawnError

// ProcessExitError indicates the server process exited before becoming
// ready.
type ProcessExitError = errors.ProcessExitError

// StartupTimeoutError indicates the server did not report readiness in
// time.
type StartupTimeoutError = errors.StartupTimeoutError

// ConnectionError indicates an HTTP request could not reach the server.
type ConnectionError = errors.ConnectionError

// SubscriptionError indicates the event subscription failed or was lost.
type SubscriptionError = errors.SubscriptionError

// EventParseError indicates an event payload could not be decoded.
type EventParseError = errors.EventParseError

// APIError indicates the server answered with a non-2xx status.
type APIError = errors.APIError

// Re-export sentinel errors from internal package.
var (
	// ErrServerStopped indicates the supervised server is no longer running.
	ErrServerStopped = errors.ErrServerStopped

	// ErrNotConnected indicates the client has been closed or never
	// connected.
	ErrNotConnected = errors.ErrNotConnected

	// ErrSessionNotFound indicates the requested session does not exist.
	ErrSessionNotFound = errors.ErrSessionNotFound
)

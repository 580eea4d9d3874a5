package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessExitError(t *testing.T) {
	err := &ProcessExitError{ExitCode: 1, Output: "boom"}

	assert.Contains(t, err.Error(), "exit 1")
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, err.IsSDKError())
}

func TestStartupTimeoutError(t *testing.T) {
	err := &StartupTimeoutError{Timeout: "10s", Output: "still starting"}

	assert.Contains(t, err.Error(), "10s")
	assert.Contains(t, err.Error(), "still starting")
}

func TestSpawnError_Unwrap(t *testing.T) {
	cause := stderrors.New("executable file not found")
	err := &SpawnError{Binary: "opencode", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "opencode")
}

func TestConnectionError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := &ConnectionError{URL: "http://127.0.0.1:4096", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "http://127.0.0.1:4096")
}

func TestAPIError_AsType(t *testing.T) {
	var err error = fmt.Errorf("request: %w", &APIError{
		Status: 404,
		Method: "GET",
		Path:   "/session/abc",
		Body:   "not found",
	})

	var apiErr *APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "/session/abc", apiErr.Path)
}

func TestEventParseError_Unwrap(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := &EventParseError{RawData: "{", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "{", err.RawData)
}

func TestAllErrorsImplementSDKError(t *testing.T) {
	errs := []SDKError{
		&SpawnError{},
		&ProcessExitError{},
		&StartupTimeoutError{},
		&ConnectionError{},
		&SubscriptionError{},
		&EventParseError{},
		&APIError{},
	}

	for _, err := range errs {
		assert.True(t, err.IsSDKError())
	}
}

// Package errors defines error types for the OpenCode SDK.
//
// This package provides structured error types that wrap different failure
// scenarios when supervising and talking to an OpenCode server. All error
// types support error unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors

// Package config provides configuration types shared by the SDK's public
// surface and its internal packages.
package config

import (
	"log/slog"
	"time"
)

// Defaults applied by Normalize.
const (
	DefaultBinaryPath        = "opencode"
	DefaultStartupTimeout    = 10 * time.Second
	DefaultConnectionTimeout = 30 * time.Second
	DefaultReadTimeout       = 300 * time.Second
)

// Options configures a client and, when no BaseURL is given, the server
// process it spawns.
type Options struct {
	// BaseURL is an explicit server URL. When set, the client connects to it
	// instead of spawning a server. Use for testing or shared servers.
	BaseURL string

	// BinaryPath is the path to the opencode executable, searched in PATH
	// when relative.
	BinaryPath string

	// Directory is the working directory for the server and the value of
	// the x-opencode-directory request header.
	Directory string

	// StartupTimeout bounds how long Spawn waits for a readiness line.
	StartupTimeout time.Duration

	// Username and Password are optional basic-auth credentials. They are
	// handed to a spawned server through its environment, never through
	// argv, so they stay out of process listings.
	Username string
	Password string

	// ConfigJSON is an optional configuration payload injected into a
	// spawned server via the OPENCODE_CONFIG_CONTENT environment variable.
	ConfigJSON string

	// Mdns enables service discovery announcement on the spawned server.
	Mdns bool

	// DefaultProvider and DefaultModel are used for messages that do not
	// specify a model.
	DefaultProvider string
	DefaultModel    string

	// ConnectionTimeout bounds dialing for all connections.
	ConnectionTimeout time.Duration

	// ReadTimeout bounds ordinary request/response calls. The event
	// subscription channel is long-lived and deliberately does not share
	// this value.
	ReadTimeout time.Duration

	// Env holds extra environment variables for a spawned server.
	Env map[string]string

	// Logger receives debug/info/warn/error messages from all SDK
	// components. Nil means silent operation.
	Logger *slog.Logger
}

// Normalize fills unset fields with defaults.
func (o *Options) Normalize() {
	if o.BinaryPath == "" {
		o.BinaryPath = DefaultBinaryPath
	}

	if o.StartupTimeout <= 0 {
		o.StartupTimeout = DefaultStartupTimeout
	}

	if o.ConnectionTimeout <= 0 {
		o.ConnectionTimeout = DefaultConnectionTimeout
	}

	if o.ReadTimeout <= 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
}

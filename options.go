package opencodesdk

import (
	"log/slog"
	"time"

	"github.com/wagiedev/opencode-sdk-go/internal/config"
)

// ClientOptions configures a client and, when no base URL is given, the
// server process it spawns.
type ClientOptions = config.Options

// Option configures ClientOptions using the functional options pattern.
type Option func(*ClientOptions)

// applyOptions applies functional options over the defaults.
func applyOptions(opts []Option) *ClientOptions {
	options := &ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	options.Normalize()

	return options
}

// WithBaseURL connects to an already running server instead of spawning
// one. Use for testing or shared servers.
func WithBaseURL(url string) Option {
	return func(o *ClientOptions) {
		o.BaseURL = url
	}
}

// WithBinaryPath sets the path to the opencode executable.
// If not set, "opencode" is searched in PATH.
func WithBinaryPath(path string) Option {
	return func(o *ClientOptions) {
		o.BinaryPath = path
	}
}

// WithDirectory sets the working directory the server operates on. It is
// also sent as the x-opencode-directory header on every request.
func WithDirectory(dir string) Option {
	return func(o *ClientOptions) {
		o.Directory = dir
	}
}

// WithStartupTimeout bounds how long New waits for a spawned server to
// report readiness.
func WithStartupTimeout(timeout time.Duration) Option {
	return func(o *ClientOptions) {
		o.StartupTimeout = timeout
	}
}

// WithBasicAuth sets credentials for the server. A spawned server receives
// them through its environment, never through argv.
func WithBasicAuth(username, password string) Option {
	return func(o *ClientOptions) {
		o.Username = username
		o.Password = password
	}
}

// WithConfigJSON injects a configuration document into a spawned server via
// the OPENCODE_CONFIG_CONTENT environment variable.
func WithConfigJSON(configJSON string) Option {
	return func(o *ClientOptions) {
		o.ConfigJSON = configJSON
	}
}

// WithMdns enables service discovery announcement on a spawned server.
func WithMdns() Option {
	return func(o *ClientOptions) {
		o.Mdns = true
	}
}

// WithDefaultModel sets the provider and model used by messages that do not
// specify one.
func WithDefaultModel(providerID, modelID string) Option {
	return func(o *ClientOptions) {
		o.DefaultProvider = providerID
		o.DefaultModel = modelID
	}
}

// WithConnectionTimeout bounds dialing for all connections.
func WithConnectionTimeout(timeout time.Duration) Option {
	return func(o *ClientOptions) {
		o.ConnectionTimeout = timeout
	}
}

// WithReadTimeout bounds ordinary request/response calls. The event
// subscription is long-lived and unaffected.
func WithReadTimeout(timeout time.Duration) Option {
	return func(o *ClientOptions) {
		o.ReadTimeout = timeout
	}
}

// WithEnv provides additional environment variables for a spawned server.
func WithEnv(env map[string]string) Option {
	return func(o *ClientOptions) {
		o.Env = env
	}
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *ClientOptions) {
		o.Logger = logger
	}
}

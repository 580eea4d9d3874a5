// Package server supervises the opencode server process: it spawns the
// worker, detects readiness by scanning its output, and owns graceful and
// forceful shutdown.
package server

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/opencode-sdk-go/internal/config"
	"github.com/wagiedev/opencode-sdk-go/internal/errors"
)

const (
	// pollInterval is the slice used while waiting for readiness output and
	// while polling liveness during graceful shutdown.
	pollInterval = 100 * time.Millisecond

	// gracePeriod is how long Stop waits after a termination request before
	// escalating to a kill.
	gracePeriod = 5 * time.Second
)

// State is the supervisor lifecycle state.
type State int

// Supervisor states. The only transitions are Unstarted → Starting → Ready
// → Stopping → Stopped, and Starting → Failed.
const (
	StateUnstarted State = iota
	StateStarting
	StateReady
	StateStopping
	StateStopped
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateStarting:
		return "starting"
	case StateReady:
		return "ready"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Readiness banners vary across server versions; two heuristics are tried
// in order. First a verb+URL pattern, then a looser port+keyword match.
var (
	urlPattern  = regexp.MustCompile(`(?i)(?:listening|running|started|bound)\s+(?:on|at)\s+(https?://\S+)`)
	portPattern = regexp.MustCompile(`:(\d+)`)
)

// Options configures Spawn.
type Options struct {
	// BinaryPath is the server executable, resolved via PATH when relative.
	BinaryPath string

	// Hostname and Port are passed to the serve command. Port 0 asks the
	// server for an OS-assigned port, resolved from the readiness banner.
	Hostname string
	Port     int

	// Mdns adds the service discovery flag.
	Mdns bool

	// WorkingDir is the server's working directory.
	WorkingDir string

	// ConfigJSON, Username, and Password are injected via environment
	// variables, never argv, so credentials stay out of process listings.
	ConfigJSON string
	Username   string
	Password   string

	// Env holds additional environment variables.
	Env map[string]string

	// StartupTimeout bounds the readiness scan.
	StartupTimeout time.Duration

	// Logger receives supervisor diagnostics. Nil means silent.
	Logger *slog.Logger
}

func (o *Options) normalize() {
	if o.BinaryPath == "" {
		o.BinaryPath = config.DefaultBinaryPath
	}

	if o.Hostname == "" {
		o.Hostname = "127.0.0.1"
	}

	if o.StartupTimeout <= 0 {
		o.StartupTimeout = config.DefaultStartupTimeout
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// Server is a supervised server process. It is owned by a single goroutine;
// methods are not designed for concurrent invocation.
type Server struct {
	log      *slog.Logger
	url      string
	hostname string
	port     int

	cmd    *exec.Cmd
	lines  chan string
	exited chan int // buffered; receives the exit code exactly once
	g      *errgroup.Group

	mu    sync.Mutex
	state State
	dead  bool

	reapOnce sync.Once
	exitCode int
}

// Spawn launches the server and blocks the caller until it is ready,
// failed, or timed out. No partially started server is ever returned: on
// failure the process has exited or been killed and reaped.
func Spawn(ctx context.Context, opts Options) (*Server, error) {
	opts.normalize()

	log := opts.Logger.With("component", "server")

	args := []string{"serve", "--hostname", opts.Hostname, "--port", strconv.Itoa(opts.Port)}
	if opts.Mdns {
		args = append(args, "--mdns")
	}

	//nolint:gosec // G204: launching a user-configured server binary is the point
	cmd := exec.CommandContext(ctx, opts.BinaryPath, args...)
	cmd.Dir = opts.WorkingDir
	cmd.Env = buildEnvironment(&opts)
	cmd.Cancel = func() error {
		// Context cancellation goes through the graceful path first.
		return cmd.Process.Signal(syscall.SIGTERM)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &errors.SpawnError{Binary: opts.BinaryPath, Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		return nil, &errors.SpawnError{Binary: opts.BinaryPath, Err: err}
	}

	log.Info("Spawned server process", "pid", cmd.Process.Pid, "binary", opts.BinaryPath)

	s := &Server{
		log:      log,
		hostname: opts.Hostname,
		port:     opts.Port,
		cmd:      cmd,
		lines:    make(chan string, 64),
		exited:   make(chan int, 1),
		state:    StateStarting,
	}

	// Pump stdout into the line channel, then reap. Reading must finish
	// before Wait per the os/exec pipe contract.
	s.g, _ = errgroup.WithContext(context.Background())
	s.g.Go(func() error {
		defer close(s.lines)

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			s.lines <- scanner.Text()
		}

		waitErr := cmd.Wait()

		exitCode := 0

		var exitErr *exec.ExitError

		if stderrors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else if waitErr != nil {
			exitCode = -1
		}

		s.markDead()
		s.exited <- exitCode

		return nil
	})

	if err := s.awaitReady(opts); err != nil {
		s.setState(StateFailed)

		return nil, err
	}

	s.setState(StateReady)
	log.Info("Server ready", "url", s.url, "pid", cmd.Process.Pid)

	return s, nil
}

// awaitReady scans output lines for a readiness banner. It consumes the
// caller's thread: a genuine blocking wait loop with internal polling.
func (s *Server) awaitReady(opts Options) error {
	deadline := time.NewTimer(opts.StartupTimeout)
	defer deadline.Stop()

	var output strings.Builder

	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				// Output closed: the process is going down. Collect its code.
				exitCode := <-s.exited

				s.log.Warn("Server exited during startup", "exit_code", exitCode)

				return &errors.ProcessExitError{ExitCode: exitCode, Output: output.String()}
			}

			output.WriteString(line)
			output.WriteString("\n")

			if s.matchReadiness(line, opts) {
				go s.drainLines()

				return nil
			}

		case exitCode := <-s.exited:
			s.drainInto(&output)

			s.log.Warn("Server exited during startup", "exit_code", exitCode)

			return &errors.ProcessExitError{ExitCode: exitCode, Output: output.String()}

		case <-deadline.C:
			s.log.Warn("Server startup timed out", "timeout", opts.StartupTimeout)

			_ = s.cmd.Process.Kill()

			// Drain to completion so the pump can never stall on a full
			// channel, then reap.
			for line := range s.lines {
				output.WriteString(line)
				output.WriteString("\n")
			}

			<-s.exited

			return &errors.StartupTimeoutError{
				Timeout: opts.StartupTimeout.String(),
				Output:  output.String(),
			}

		case <-time.After(pollInterval):
			// Short slice; loop to re-check output and liveness.
		}
	}
}

// matchReadiness applies the two banner heuristics in order, first match
// wins. On success the endpoint fields are populated.
func (s *Server) matchReadiness(line string, opts Options) bool {
	if m := urlPattern.FindStringSubmatch(line); m != nil {
		s.url = m[1]

		if u, err := url.Parse(s.url); err == nil && u.Hostname() != "" {
			s.hostname = u.Hostname()
		}

		if pm := portPattern.FindStringSubmatch(s.url); pm != nil {
			if port, err := strconv.Atoi(pm[1]); err == nil {
				s.port = port
			}
		}

		s.log.Debug("Matched readiness banner", "line", line, "url", s.url)

		return true
	}

	// Fallback: the requested port plus a serving keyword.
	if strings.Contains(line, ":"+strconv.Itoa(opts.Port)) &&
		(strings.Contains(line, "listen") ||
			strings.Contains(line, "bound") ||
			strings.Contains(line, "server")) {
		s.url = fmt.Sprintf("http://%s:%d", opts.Hostname, opts.Port)

		s.log.Debug("Matched fallback readiness banner", "line", line, "url", s.url)

		return true
	}

	return false
}

// drainLines discards post-readiness output at debug level so the pump
// goroutine never blocks on a full channel.
func (s *Server) drainLines() {
	for line := range s.lines {
		s.log.Debug("Server output", "line", line)
	}
}

// drainInto moves any buffered output lines into b.
func (s *Server) drainInto(b *strings.Builder) {
	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				return
			}

			b.WriteString(line)
			b.WriteString("\n")
		default:
			return
		}
	}
}

// URL returns the resolved endpoint, immutable once established.
func (s *Server) URL() string {
	return s.url
}

// Hostname returns the resolved host.
func (s *Server) Hostname() string {
	return s.hostname
}

// Port returns the resolved port.
func (s *Server) Port() int {
	return s.port
}

// PID returns the worker process id.
func (s *Server) PID() int {
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}

	return s.cmd.Process.Pid
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Running reports whether the worker process is still alive.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.dead
}

func (s *Server) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

func (s *Server) markDead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dead = true
}

// Stop requests graceful termination, polls liveness through a bounded
// grace window, escalates to a kill if the window expires, and always
// reaps the process.
func (s *Server) Stop(ctx context.Context) error {
	if !s.Running() {
		s.reap()
		s.setState(StateStopped)

		return nil
	}

	s.setState(StateStopping)
	s.log.Info("Stopping server", "pid", s.PID())

	if err := s.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// Already gone between the liveness check and the signal.
		s.reap()
		s.setState(StateStopped)

		return nil
	}

	grace := time.NewTimer(gracePeriod)
	defer grace.Stop()

	for s.Running() {
		select {
		case <-grace.C:
			s.log.Warn("Grace period expired, killing server", "pid", s.PID())

			_ = s.cmd.Process.Kill()
			s.reap()
			s.setState(StateStopped)

			return nil

		case <-ctx.Done():
			_ = s.cmd.Process.Kill()
			s.reap()
			s.setState(StateStopped)

			return ctx.Err()

		case <-time.After(pollInterval):
		}
	}

	s.reap()
	s.setState(StateStopped)

	return nil
}

// ForceStop kills the process immediately and reaps it.
func (s *Server) ForceStop() {
	if s.Running() {
		s.log.Info("Force stopping server", "pid", s.PID())

		_ = s.cmd.Process.Kill()
	}

	s.reap()
	s.setState(StateStopped)
}

// Close always runs the graceful path; a live process is never abandoned.
func (s *Server) Close() error {
	return s.Stop(context.Background())
}

// Wait blocks until the process exits and returns its exit code.
func (s *Server) Wait() int {
	s.reap()

	return s.exitCode
}

// reap waits for the pump goroutine, which in turn has waited on the
// process, so the worker never leaks as a zombie.
func (s *Server) reap() {
	s.reapOnce.Do(func() {
		_ = s.g.Wait()
		s.exitCode = <-s.exited
	})
}

// buildEnvironment constructs the environment overlay for the worker.
func buildEnvironment(opts *Options) []string {
	env := os.Environ()

	if opts.ConfigJSON != "" {
		env = append(env, "OPENCODE_CONFIG_CONTENT="+opts.ConfigJSON)
	}

	if opts.Username != "" {
		env = append(env, "OPENCODE_SERVER_USERNAME="+opts.Username)
	}

	if opts.Password != "" {
		env = append(env, "OPENCODE_SERVER_PASSWORD="+opts.Password)
	}

	for key, value := range opts.Env {
		env = append(env, key+"="+value)
	}

	return env
}

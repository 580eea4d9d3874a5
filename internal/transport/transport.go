// Package transport implements HTTP communication with an OpenCode server:
// ordinary JSON request/response calls plus a long-lived Server-Sent-Events
// subscription.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/opencode-sdk-go/internal/config"
	"github.com/wagiedev/opencode-sdk-go/internal/errors"
	"github.com/wagiedev/opencode-sdk-go/internal/sse"
)

// sseChunkSize is the read buffer size for the event stream. Cancellation
// is cooperative: a stop request is observed at the next chunk boundary.
const sseChunkSize = 4096

// Transport owns the HTTP clients for one server endpoint and at most one
// active event subscription at a time.
//
// Request/response calls and the subscription use independently configured
// clients: the subscription connection is intentionally long-lived and must
// not inherit the ordinary read timeout.
type Transport struct {
	log       *slog.Logger
	baseURL   string
	directory string
	username  string
	password  string

	client    *http.Client // request/response, bounded by ReadTimeout
	sseClient *http.Client // subscription, no overall deadline

	mu        sync.Mutex // guards subscription start/stop
	running   atomic.Bool
	connected atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a transport for the given base URL (scheme://host:port).
func New(log *slog.Logger, baseURL string, opts *config.Options) *Transport {
	dialer := &net.Dialer{Timeout: opts.ConnectionTimeout}

	return &Transport{
		log:       log.With("component", "transport"),
		baseURL:   baseURL,
		directory: opts.Directory,
		username:  opts.Username,
		password:  opts.Password,
		client: &http.Client{
			Timeout: opts.ReadTimeout,
			Transport: &http.Transport{
				DialContext: dialer.DialContext,
			},
		},
		sseClient: &http.Client{
			Transport: &http.Transport{
				DialContext:           dialer.DialContext,
				ResponseHeaderTimeout: opts.ConnectionTimeout,
			},
		},
	}
}

// BaseURL returns the endpoint this transport talks to.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Do performs a JSON request and returns the response body. A nil body
// sends no payload. Non-2xx responses are returned as *errors.APIError.
func (t *Transport) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	t.setCommonHeaders(req)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := ulid.Make().String()
	req.Header.Set("X-Request-Id", requestID)

	t.log.Debug("Sending request", "method", method, "path", path, "request_id", requestID)

	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Debug("Request failed", "method", method, "path", path, "error", err)

		return nil, &errors.ConnectionError{URL: t.baseURL, Err: err}
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.log.Debug("Request returned error status",
			"method", method, "path", path, "status", resp.StatusCode)

		return nil, &errors.APIError{
			Status: resp.StatusCode,
			Method: method,
			Path:   path,
			Body:   string(respBody),
		}
	}

	return respBody, nil
}

// setCommonHeaders applies headers shared by all calls.
func (t *Transport) setCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")

	if t.directory != "" {
		req.Header.Set("x-opencode-directory", t.directory)
	}

	if t.username != "" || t.password != "" {
		req.SetBasicAuth(t.username, t.password)
	}
}

// StartSSE opens an event subscription on path and delivers decoded events
// to onEvent synchronously from the subscription goroutine.
//
// Any previous subscription is stopped and joined first, so a transport
// never runs two decoder goroutines at once. If the connection terminates
// while the subscription is still running, onError fires exactly once;
// after an intentional Stop it does not fire at all. onClose always fires
// exactly once, as the final callback.
func (t *Transport) StartSSE(
	path string,
	headers map[string]string,
	onEvent func(sse.Event),
	onError func(error),
	onClose func(),
) {
	t.StopSSE()

	t.mu.Lock()
	defer t.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())

	t.cancel = cancel
	t.done = make(chan struct{})
	t.running.Store(true)

	go t.runSSE(ctx, t.done, path, headers, onEvent, onError, onClose)
}

// StopSSE stops the active subscription, if any, and blocks until its
// goroutine has exited. Calling it from inside an event callback would
// self-join and deadlock; that is a caller error.
func (t *Transport) StopSSE() {
	t.mu.Lock()

	t.running.Store(false)

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	done := t.done
	t.done = nil

	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// SSEConnected reports whether the subscription currently holds an open
// connection.
func (t *Transport) SSEConnected() bool {
	return t.connected.Load()
}

// runSSE is the body of the subscription goroutine.
func (t *Transport) runSSE(
	ctx context.Context,
	done chan struct{},
	path string,
	headers map[string]string,
	onEvent func(sse.Event),
	onError func(error),
	onClose func(),
) {
	defer close(done)
	defer onClose()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		if t.running.Load() {
			onError(&errors.SubscriptionError{Message: err.Error()})
		}

		return
	}

	t.setCommonHeaders(req)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "keep-alive")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	t.log.Debug("Opening event subscription", "path", path)

	resp, err := t.sseClient.Do(req)
	if err != nil {
		if t.running.Load() {
			t.log.Debug("Subscription connect failed", "error", err)
			onError(&errors.SubscriptionError{Message: err.Error()})
		}

		return
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if t.running.Load() {
			onError(&errors.SubscriptionError{
				Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
			})
		}

		return
	}

	t.connected.Store(true)
	defer t.connected.Store(false)

	var decoder sse.Decoder

	buf := make([]byte, sseChunkSize)

	for {
		n, readErr := resp.Body.Read(buf)

		if n > 0 {
			if !t.running.Load() {
				t.log.Debug("Subscription stopped, discarding chunk")

				return
			}

			decoder.Feed(string(buf[:n]), onEvent)
		}

		if readErr != nil {
			if t.running.Load() {
				// Still supposed to be running: the server side went away.
				t.log.Debug("Subscription connection lost", "error", readErr)
				onError(&errors.SubscriptionError{Message: readErr.Error()})
			}

			return
		}
	}
}

// HealthCheck probes path with a short deadline, independent of the
// transport's configured timeouts. Used during endpoint discovery.
func (t *Transport) HealthCheck(ctx context.Context, path string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := t.Do(ctx, http.MethodGet, path, nil)

	return err
}

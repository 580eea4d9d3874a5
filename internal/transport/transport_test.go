package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/opencode-sdk-go/internal/config"
	sdkerrors "github.com/wagiedev/opencode-sdk-go/internal/errors"
	"github.com/wagiedev/opencode-sdk-go/internal/sse"
)

func newTestTransport(t *testing.T, server *httptest.Server, opts *config.Options) *Transport {
	t.Helper()

	if opts == nil {
		opts = &config.Options{}
	}

	opts.Normalize()

	return New(nopLogger(), server.URL, opts)
}

func nopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDo_JSONRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["title"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"ses_1"}`)
	}))
	defer server.Close()

	tr := newTestTransport(t, server, nil)

	body, err := tr.Do(context.Background(), http.MethodPost, "/session", map[string]string{"title": "hello"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"ses_1"}`, string(body))
}

func TestDo_DirectoryAndAuthHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/work/dir", r.Header.Get("x-opencode-directory"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "s3cret", pass)

		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	tr := newTestTransport(t, server, &config.Options{
		Directory: "/work/dir",
		Username:  "alice",
		Password:  "s3cret",
	})

	_, err := tr.Do(context.Background(), http.MethodGet, "/global/health", nil)
	require.NoError(t, err)
}

func TestDo_APIErrorOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such session", http.StatusNotFound)
	}))
	defer server.Close()

	tr := newTestTransport(t, server, nil)

	_, err := tr.Do(context.Background(), http.MethodGet, "/session/missing", nil)

	var apiErr *sdkerrors.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Body, "no such session")
}

func TestDo_ConnectionErrorOnUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // unreachable from here on

	opts := &config.Options{}
	opts.Normalize()

	tr := New(nopLogger(), server.URL, opts)

	_, err := tr.Do(context.Background(), http.MethodGet, "/global/health", nil)

	var connErr *sdkerrors.ConnectionError

	assert.ErrorAs(t, err, &connErr)
}

// sseHandler streams the given records and then blocks until release is
// closed, keeping the connection open like a real event endpoint.
func sseHandler(t *testing.T, records string, release <-chan struct{}) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")

		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		_, err := fmt.Fprint(w, records)
		require.NoError(t, err)
		flusher.Flush()

		if release != nil {
			<-release
		}
	}
}

func TestStartSSE_DeliversEventsInOrder(t *testing.T) {
	release := make(chan struct{})

	records := "event: ping\ndata: one\n\ndata: two\n\ndata: three\n\n"

	server := httptest.NewServer(sseHandler(t, records, release))
	defer server.Close()
	defer close(release) // unblock the handler before server.Close joins it

	tr := newTestTransport(t, server, nil)

	var mu sync.Mutex

	var events []sse.Event

	got := make(chan struct{}, 3)

	tr.StartSSE("/event", nil,
		func(ev sse.Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
			got <- struct{}{}
		},
		func(err error) { t.Errorf("unexpected error callback: %v", err) },
		func() {},
	)

	for range 3 {
		select {
		case <-got:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}

	tr.StopSSE()

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, events, 3)
	assert.Equal(t, "ping", events[0].Name)
	assert.Equal(t, "one", events[0].Data)
	assert.Equal(t, "two", events[1].Data)
	assert.Equal(t, "three", events[2].Data)
}

func TestStopSSE_NoErrorCallbackOnIntentionalStop(t *testing.T) {
	release := make(chan struct{})

	server := httptest.NewServer(sseHandler(t, "data: x\n\n", release))
	defer server.Close()
	defer close(release) // unblock the handler before server.Close joins it

	tr := newTestTransport(t, server, nil)

	received := make(chan struct{}, 1)
	closed := make(chan struct{})

	var errCount int

	tr.StartSSE("/event", nil,
		func(sse.Event) {
			select {
			case received <- struct{}{}:
			default:
			}
		},
		func(error) { errCount++ },
		func() { close(closed) },
	)

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	tr.StopSSE()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("close callback never fired")
	}

	assert.Zero(t, errCount, "intentional stop must not fire the error callback")
	assert.False(t, tr.SSEConnected())
}

func TestStartSSE_ErrorThenCloseOnUnexpectedTermination(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, "data: x\n\n", nil)) // handler returns, closing the stream
	defer server.Close()

	tr := newTestTransport(t, server, nil)

	var order []string

	var mu sync.Mutex

	closed := make(chan struct{})

	tr.StartSSE("/event", nil,
		func(sse.Event) {},
		func(err error) {
			mu.Lock()
			order = append(order, "error")
			mu.Unlock()

			var subErr *sdkerrors.SubscriptionError

			assert.ErrorAs(t, err, &subErr)
		},
		func() {
			mu.Lock()
			order = append(order, "close")
			mu.Unlock()
			close(closed)
		},
	)

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("close callback never fired")
	}

	tr.StopSSE()

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{"error", "close"}, order)
}

func TestStartSSE_JoinsPreviousSubscription(t *testing.T) {
	release := make(chan struct{})

	server := httptest.NewServer(sseHandler(t, "data: x\n\n", release))
	defer server.Close()
	defer close(release) // unblock the handler before server.Close joins it

	tr := newTestTransport(t, server, nil)

	firstClosed := make(chan struct{})

	tr.StartSSE("/event", nil, func(sse.Event) {}, func(error) {}, func() { close(firstClosed) })

	secondEvent := make(chan struct{}, 1)

	tr.StartSSE("/event", nil,
		func(sse.Event) {
			select {
			case secondEvent <- struct{}{}:
			default:
			}
		},
		func(error) {},
		func() {},
	)

	// The first subscription must have fully shut down before the second ran.
	select {
	case <-firstClosed:
	default:
		t.Fatal("previous subscription was not joined before starting a new one")
	}

	select {
	case <-secondEvent:
	case <-time.After(2 * time.Second):
		t.Fatal("second subscription received no events")
	}

	tr.StopSSE()
}

func TestStopSSE_WithoutActiveSubscriptionIsNoOp(t *testing.T) {
	opts := &config.Options{}
	opts.Normalize()

	tr := New(nopLogger(), "http://127.0.0.1:0", opts)

	tr.StopSSE()
	tr.StopSSE()
}

func TestStartSSE_ErrorOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	tr := newTestTransport(t, server, nil)

	errCh := make(chan error, 1)
	closed := make(chan struct{})

	tr.StartSSE("/event", nil,
		func(sse.Event) {},
		func(err error) { errCh <- err },
		func() { close(closed) },
	)

	select {
	case err := <-errCh:
		assert.Contains(t, err.Error(), "403")
	case <-time.After(2 * time.Second):
		t.Fatal("no error callback")
	}

	<-closed
	tr.StopSSE()
}

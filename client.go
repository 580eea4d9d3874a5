package opencodesdk

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wagiedev/opencode-sdk-go/internal/config"
	"github.com/wagiedev/opencode-sdk-go/internal/errors"
	"github.com/wagiedev/opencode-sdk-go/internal/server"
	"github.com/wagiedev/opencode-sdk-go/internal/sse"
	"github.com/wagiedev/opencode-sdk-go/internal/stream"
	"github.com/wagiedev/opencode-sdk-go/internal/transport"
)

// eventsPath is the server's event channel endpoint.
const eventsPath = "/event"

// connectWait bounds how long a message stream waits for its subscription
// to report server.connected before sending anyway.
const connectWait = 2 * time.Second

// Client talks to one OpenCode server. Construct it with New; a zero
// Client is not usable.
//
// When no base URL is configured, the client spawns and supervises its own
// server process and tears it down on Close.
type Client struct {
	log       *slog.Logger
	opts      *config.Options
	transport *transport.Transport
	server    *server.Server // nil when connected to an external server
	closed    atomic.Bool
}

// New creates a client. With WithBaseURL it connects to the given server;
// otherwise it spawns one on an OS-assigned port and waits for it to become
// ready. Either way the endpoint is health-checked once before New returns;
// there is no retry and no partially started server left behind on failure.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	options := applyOptions(opts)

	if options.Logger == nil {
		options.Logger = NopLogger()
	}

	c := &Client{
		log:  options.Logger.With("component", "client"),
		opts: options,
	}

	if options.BaseURL != "" {
		c.transport = transport.New(options.Logger, options.BaseURL, options)

		if err := c.transport.HealthCheck(ctx, "/global/health", options.ConnectionTimeout); err != nil {
			return nil, err
		}

		c.log.Info("Connected to server", "url", options.BaseURL)

		return c, nil
	}

	srv, err := server.Spawn(ctx, server.Options{
		BinaryPath:     options.BinaryPath,
		Port:           0,
		Mdns:           options.Mdns,
		WorkingDir:     options.Directory,
		ConfigJSON:     options.ConfigJSON,
		Username:       options.Username,
		Password:       options.Password,
		Env:            options.Env,
		StartupTimeout: options.StartupTimeout,
		Logger:         options.Logger,
	})
	if err != nil {
		return nil, err
	}

	c.server = srv
	c.transport = transport.New(options.Logger, srv.URL(), options)

	if err := c.transport.HealthCheck(ctx, "/global/health", options.ConnectionTimeout); err != nil {
		srv.ForceStop()

		return nil, err
	}

	c.log.Info("Connected to spawned server", "url", srv.URL(), "pid", srv.PID())

	return c, nil
}

// ServerURL returns the endpoint the client talks to.
func (c *Client) ServerURL() string {
	return c.transport.BaseURL()
}

// IsConnected reports whether the client is usable and, for spawned
// servers, whether the process is still alive.
func (c *Client) IsConnected() bool {
	if c.closed.Load() {
		return false
	}

	if c.server != nil {
		return c.server.Running()
	}

	return true
}

// Close shuts the client down. A spawned server is stopped gracefully.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	c.transport.StopSSE()

	if c.server != nil {
		return c.server.Close()
	}

	return nil
}

// do performs one JSON call and decodes the response into T.
func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T

	if c.closed.Load() {
		return out, errors.ErrNotConnected
	}

	data, err := c.transport.Do(ctx, method, path, body)
	if err != nil {
		return out, err
	}

	if len(data) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return out, nil
}

// doNoResult performs one JSON call and discards the response body.
func (c *Client) doNoResult(ctx context.Context, method, path string, body any) error {
	if c.closed.Load() {
		return errors.ErrNotConnected
	}

	_, err := c.transport.Do(ctx, method, path, body)

	return err
}

// Health probes the server.
func (c *Client) Health(ctx context.Context) (HealthInfo, error) {
	return do[HealthInfo](ctx, c, http.MethodGet, "/global/health", nil)
}

// ListSessions returns all sessions.
func (c *Client) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	return do[[]SessionInfo](ctx, c, http.MethodGet, "/session", nil)
}

// CreateSession creates a session. An empty title lets the server pick one.
func (c *Client) CreateSession(ctx context.Context, title string) (*Session, error) {
	var body any

	if title != "" {
		body = map[string]string{"title": title}
	}

	info, err := do[SessionInfo](ctx, c, http.MethodPost, "/session", body)
	if err != nil {
		return nil, err
	}

	return &Session{client: c, Info: info}, nil
}

// GetSession fetches an existing session. A missing session returns an
// error wrapping ErrSessionNotFound.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	info, err := do[SessionInfo](ctx, c, http.MethodGet, "/session/"+sessionID, nil)
	if err != nil {
		var apiErr *errors.APIError

		if stderrors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", errors.ErrSessionNotFound, sessionID)
		}

		return nil, err
	}

	return &Session{client: c, Info: info}, nil
}

// DeleteSession deletes a session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.doNoResult(ctx, http.MethodDelete, "/session/"+sessionID, nil)
}

// sendMessageBody is the wire shape of a message send.
type sendMessageBody struct {
	Parts []sendMessagePart `json:"parts"`
	Model *ModelRef         `json:"model,omitempty"`
}

type sendMessagePart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *Client) messageBody(prompt string) sendMessageBody {
	body := sendMessageBody{
		Parts: []sendMessagePart{{Type: PartTypeText, Text: prompt}},
	}

	if c.opts.DefaultProvider != "" || c.opts.DefaultModel != "" {
		body.Model = &ModelRef{
			ProviderID: c.opts.DefaultProvider,
			ModelID:    c.opts.DefaultModel,
		}
	}

	return body
}

// SendMessage sends a prompt to a session and blocks until the full
// response is available. The model defaults to WithDefaultModel.
func (c *Client) SendMessage(ctx context.Context, sessionID, prompt string) (MessageWithParts, error) {
	return do[MessageWithParts](ctx, c, http.MethodPost,
		"/session/"+sessionID+"/message", c.messageBody(prompt))
}

// SendMessageStream sends a prompt and returns a stream of the response's
// parts as the server produces them. The final message is available from
// MessageStream.Result once the send completes.
func (c *Client) SendMessageStream(ctx context.Context, sessionID, prompt string) *MessageStream {
	ms := &MessageStream{
		parts: stream.New[Part](),
		tr:    transport.New(c.opts.Logger, c.transport.BaseURL(), c.opts),
		done:  make(chan struct{}),
	}

	connected := make(chan struct{})

	var connectedOnce sync.Once

	signalConnected := func() {
		connectedOnce.Do(func() { close(connected) })
	}

	ms.tr.StartSSE(eventsPath, nil,
		func(raw sse.Event) {
			event, err := UnmarshalEvent([]byte(raw.Data))
			if err != nil || event == nil {
				return
			}

			switch e := event.(type) {
			case *ServerConnectedEvent:
				signalConnected()

			case *MessagePartUpdatedEvent:
				if e.SessionID != sessionID {
					return
				}

				part := e.Part

				// A delta replaces the accumulated text with just the
				// fragment, so consumers can append instead of re-render.
				if text, ok := part.(*TextPart); ok && e.Delta != "" {
					fragment := *text
					fragment.Text = e.Delta
					fragment.IsDelta = true
					part = &fragment
				}

				ms.parts.Push(part)
			}
		},
		func(err error) {
			c.log.Debug("Message stream subscription error", "error", err)
			signalConnected()
		},
		func() {},
	)

	// Give the subscription a moment to attach so early parts are not
	// missed, then send regardless.
	select {
	case <-connected:
	case <-time.After(connectWait):
	case <-ctx.Done():
	}

	go func() {
		result, err := c.SendMessage(ctx, sessionID, prompt)

		ms.Close()
		ms.finish(result, err)
	}()

	return ms
}

// GetMessages returns a session's messages. A limit of 0 returns all.
func (c *Client) GetMessages(ctx context.Context, sessionID string, limit int) ([]MessageWithParts, error) {
	path := "/session/" + sessionID + "/message"

	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	return do[[]MessageWithParts](ctx, c, http.MethodGet, path, nil)
}

// AbortSession cancels a session's in-flight generation.
func (c *Client) AbortSession(ctx context.Context, sessionID string) error {
	return c.doNoResult(ctx, http.MethodPost, "/session/"+sessionID+"/abort", nil)
}

// InitSession runs the session's project analysis with the given model.
func (c *Client) InitSession(ctx context.Context, sessionID, providerID, modelID string) error {
	body := map[string]string{
		"provider_id": providerID,
		"model_id":    modelID,
		"message_id":  "",
	}

	return c.doNoResult(ctx, http.MethodPost, "/session/"+sessionID+"/init", body)
}

// SummarizeSession asks the server to summarize the session and returns the
// summary text.
func (c *Client) SummarizeSession(ctx context.Context, sessionID, providerID, modelID string) (string, error) {
	body := map[string]string{
		"provider_id": providerID,
		"model_id":    modelID,
	}

	out, err := do[struct {
		Summary string `json:"summary"`
	}](ctx, c, http.MethodPost, "/session/"+sessionID+"/summarize", body)

	return out.Summary, err
}

// RevertMessage rewinds a session to before the given message. An empty
// partID reverts the whole message.
func (c *Client) RevertMessage(ctx context.Context, sessionID, messageID, partID string) (SessionInfo, error) {
	body := map[string]string{"message_id": messageID}

	if partID != "" {
		body["part_id"] = partID
	}

	return do[SessionInfo](ctx, c, http.MethodPost, "/session/"+sessionID+"/revert", body)
}

// UnrevertSession restores a session's reverted messages.
func (c *Client) UnrevertSession(ctx context.Context, sessionID string) (SessionInfo, error) {
	return do[SessionInfo](ctx, c, http.MethodPost, "/session/"+sessionID+"/unrevert", nil)
}

// ShareSession publishes a session and returns the updated info including
// its share URL.
func (c *Client) ShareSession(ctx context.Context, sessionID string) (SessionInfo, error) {
	return do[SessionInfo](ctx, c, http.MethodPost, "/session/"+sessionID+"/share", nil)
}

// UnshareSession revokes a session's public share.
func (c *Client) UnshareSession(ctx context.Context, sessionID string) (SessionInfo, error) {
	return do[SessionInfo](ctx, c, http.MethodDelete, "/session/"+sessionID+"/share", nil)
}

// ListPermissions returns all pending permission requests.
func (c *Client) ListPermissions(ctx context.Context) ([]PermissionRequest, error) {
	return do[[]PermissionRequest](ctx, c, http.MethodGet, "/permission", nil)
}

// ReplyPermission answers a pending permission request.
func (c *Client) ReplyPermission(ctx context.Context, reply PermissionReply) error {
	body := map[string]string{"action": string(reply.Action)}

	if reply.Message != "" {
		body["message"] = reply.Message
	}

	return c.doNoResult(ctx, http.MethodPost, "/permission/"+reply.RequestID, body)
}

// ListProjects returns all projects known to the server.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return do[[]Project](ctx, c, http.MethodGet, "/project", nil)
}

// CurrentProject returns the project of the configured directory.
func (c *Client) CurrentProject(ctx context.Context) (Project, error) {
	return do[Project](ctx, c, http.MethodGet, "/project/current", nil)
}

// SubscribeEvents opens a dedicated subscription to the server's event
// channel and returns a stream of typed events. Unknown event kinds are
// skipped and malformed payloads dropped; one bad record never ends the
// stream. Close the stream when done.
func (c *Client) SubscribeEvents(ctx context.Context) (*EventStream, error) {
	if c.closed.Load() {
		return nil, errors.ErrNotConnected
	}

	es := &EventStream{
		events: stream.New[Event](),
		tr:     transport.New(c.opts.Logger, c.transport.BaseURL(), c.opts),
	}

	es.tr.StartSSE(eventsPath, nil,
		func(raw sse.Event) {
			event, err := UnmarshalEvent([]byte(raw.Data))
			if err != nil {
				c.log.Debug("Dropping malformed event", "error", err)

				return
			}

			if event != nil {
				es.events.Push(event)
			}
		},
		func(err error) {
			es.setErr(err)
		},
		func() {
			es.events.Close()
		},
	)

	return es, nil
}

// ListFiles lists a directory relative to the project root.
func (c *Client) ListFiles(ctx context.Context, path string) ([]FileEntry, error) {
	if path == "" {
		path = "."
	}

	return do[[]FileEntry](ctx, c, http.MethodGet, "/file?path="+url.QueryEscape(path), nil)
}

// ReadFile returns a file's content.
func (c *Client) ReadFile(ctx context.Context, path string) (FileContent, error) {
	return do[FileContent](ctx, c, http.MethodGet, "/file/"+path, nil)
}

// FileStatus returns a file's VCS status.
func (c *Client) FileStatus(ctx context.Context, path string) (FileStatus, error) {
	return do[FileStatus](ctx, c, http.MethodGet, "/file/"+path+"/status", nil)
}

// FindText searches file contents.
func (c *Client) FindText(ctx context.Context, options TextSearchOptions) (TextSearchResult, error) {
	return do[TextSearchResult](ctx, c, http.MethodPost, "/find/text", options)
}

// FindFiles searches file names by glob pattern.
func (c *Client) FindFiles(ctx context.Context, options FileSearchOptions) ([]FileMatch, error) {
	return do[[]FileMatch](ctx, c, http.MethodPost, "/find/files", options)
}

// FindSymbols searches workspace symbols.
func (c *Client) FindSymbols(ctx context.Context, options SymbolSearchOptions) ([]SymbolMatch, error) {
	return do[[]SymbolMatch](ctx, c, http.MethodPost, "/find/symbols", options)
}

// ListProviders returns the configured model providers.
func (c *Client) ListProviders(ctx context.Context) ([]ProviderDetails, error) {
	return do[[]ProviderDetails](ctx, c, http.MethodGet, "/app/providers", nil)
}

// ListModes returns the available interaction modes.
func (c *Client) ListModes(ctx context.Context) ([]ModeInfo, error) {
	return do[[]ModeInfo](ctx, c, http.MethodGet, "/app/modes", nil)
}

// ListAgents returns the available agents.
func (c *Client) ListAgents(ctx context.Context) ([]AgentInfo, error) {
	return do[[]AgentInfo](ctx, c, http.MethodGet, "/app/agents", nil)
}

// ListSkills returns the installed skills.
func (c *Client) ListSkills(ctx context.Context) ([]SkillInfo, error) {
	return do[[]SkillInfo](ctx, c, http.MethodGet, "/app/skills", nil)
}

// Log writes a line into the server's log. Fire and forget: a failed write
// is not an error.
func (c *Client) Log(ctx context.Context, level LogLevel, message string) {
	body := map[string]string{
		"level":   string(level),
		"message": message,
	}

	if err := c.doNoResult(ctx, http.MethodPost, "/app/log", body); err != nil {
		c.log.Debug("Server log write failed", "error", err)
	}
}

// GetConfig returns the server configuration.
func (c *Client) GetConfig(ctx context.Context) (Config, error) {
	return do[Config](ctx, c, http.MethodGet, "/config", nil)
}

// UpdateConfig patches the server configuration and returns the result.
func (c *Client) UpdateConfig(ctx context.Context, updates ConfigUpdate) (Config, error) {
	return do[Config](ctx, c, http.MethodPatch, "/config", updates)
}

// ListConfigProviders returns the per-provider configuration entries.
func (c *Client) ListConfigProviders(ctx context.Context) ([]ConfigProvider, error) {
	return do[[]ConfigProvider](ctx, c, http.MethodGet, "/config/providers", nil)
}

// McpStatus returns all MCP server registrations and their states.
func (c *Client) McpStatus(ctx context.Context) (McpStatus, error) {
	return do[McpStatus](ctx, c, http.MethodGet, "/mcp/status", nil)
}

// McpAdd registers a new MCP server.
func (c *Client) McpAdd(ctx context.Context, cfg McpServerConfig) (McpServer, error) {
	return do[McpServer](ctx, c, http.MethodPost, "/mcp", cfg)
}

// McpConnect connects a registered MCP server.
func (c *Client) McpConnect(ctx context.Context, serverID string) (McpServer, error) {
	return do[McpServer](ctx, c, http.MethodPost, "/mcp/"+serverID+"/connect", nil)
}

// McpDisconnect disconnects a registered MCP server.
func (c *Client) McpDisconnect(ctx context.Context, serverID string) (McpServer, error) {
	return do[McpServer](ctx, c, http.MethodPost, "/mcp/"+serverID+"/disconnect", nil)
}

// ListQuestions returns all pending questions.
func (c *Client) ListQuestions(ctx context.Context) ([]Question, error) {
	return do[[]Question](ctx, c, http.MethodGet, "/question", nil)
}

// ReplyQuestion answers a pending question.
func (c *Client) ReplyQuestion(ctx context.Context, reply QuestionReply) error {
	body := map[string]string{"answer": reply.Answer}

	return c.doNoResult(ctx, http.MethodPost, "/question/"+reply.QuestionID, body)
}

// RejectQuestion dismisses a pending question.
func (c *Client) RejectQuestion(ctx context.Context, questionID string) error {
	return c.doNoResult(ctx, http.MethodDelete, "/question/"+questionID, nil)
}

// ListWorktrees returns all worktrees.
func (c *Client) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	return do[[]Worktree](ctx, c, http.MethodGet, "/worktree", nil)
}

// CreateWorktree creates a worktree.
func (c *Client) CreateWorktree(ctx context.Context, options WorktreeCreate) (Worktree, error) {
	return do[Worktree](ctx, c, http.MethodPost, "/worktree", options)
}

// RemoveWorktree removes a worktree.
func (c *Client) RemoveWorktree(ctx context.Context, worktreeID string) error {
	return c.doNoResult(ctx, http.MethodDelete, "/worktree/"+worktreeID, nil)
}

// ResetWorktree resets a worktree to its base state.
func (c *Client) ResetWorktree(ctx context.Context, worktreeID string) (Worktree, error) {
	return do[Worktree](ctx, c, http.MethodPost, "/worktree/"+worktreeID+"/reset", nil)
}

// ListToolIDs returns the ids of all registered tools.
func (c *Client) ListToolIDs(ctx context.Context) ([]string, error) {
	return do[[]string](ctx, c, http.MethodGet, "/tool/ids", nil)
}

// ListTools returns all registered tools including their input schemas.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	return do[[]ToolInfo](ctx, c, http.MethodGet, "/tool", nil)
}

// LspStatus returns the state of all language servers.
func (c *Client) LspStatus(ctx context.Context) (LspStatus, error) {
	return do[LspStatus](ctx, c, http.MethodGet, "/lsp/status", nil)
}

// FormatterStatus returns the availability of all formatters.
func (c *Client) FormatterStatus(ctx context.Context) (FormatterStatus, error) {
	return do[FormatterStatus](ctx, c, http.MethodGet, "/formatter/status", nil)
}

// SetAuth stores provider credentials on the server.
func (c *Client) SetAuth(ctx context.Context, providerID string, credentials AuthCredentials) (AuthResult, error) {
	return do[AuthResult](ctx, c, http.MethodPost, "/auth/"+providerID, credentials)
}

// RemoveAuth deletes provider credentials from the server.
func (c *Client) RemoveAuth(ctx context.Context, providerID string) (AuthResult, error) {
	return do[AuthResult](ctx, c, http.MethodDelete, "/auth/"+providerID, nil)
}

// DeletePart removes one part from a message.
func (c *Client) DeletePart(ctx context.Context, sessionID, messageID, partID string) error {
	path := "/session/" + sessionID + "/message/" + messageID + "/part/" + partID

	return c.doNoResult(ctx, http.MethodDelete, path, nil)
}

// UpdatePart replaces the text of one message part.
func (c *Client) UpdatePart(ctx context.Context, sessionID, messageID, partID, text string) (Part, error) {
	if c.closed.Load() {
		return nil, errors.ErrNotConnected
	}

	path := "/session/" + sessionID + "/message/" + messageID + "/part/" + partID

	data, err := c.transport.Do(ctx, http.MethodPatch, path, map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	return UnmarshalPart(data)
}

// TuiOpen opens the server-side terminal UI.
func (c *Client) TuiOpen(ctx context.Context) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/open", nil)
}

// TuiClose closes the terminal UI.
func (c *Client) TuiClose(ctx context.Context) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/close", nil)
}

// TuiFocus focuses the terminal UI.
func (c *Client) TuiFocus(ctx context.Context) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/focus", nil)
}

// TuiBlur removes focus from the terminal UI.
func (c *Client) TuiBlur(ctx context.Context) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/blur", nil)
}

// TuiResize resizes the terminal UI.
func (c *Client) TuiResize(ctx context.Context, width, height int) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/resize",
		map[string]int{"width": width, "height": height})
}

// TuiSelect sets the terminal UI selection.
func (c *Client) TuiSelect(ctx context.Context, selection TuiSelection) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/select", selection)
}

// TuiGetStatus returns the terminal UI state.
func (c *Client) TuiGetStatus(ctx context.Context) (TuiStatus, error) {
	return do[TuiStatus](ctx, c, http.MethodGet, "/tui/status", nil)
}

// TuiScroll scrolls the terminal UI. Negative values scroll up.
func (c *Client) TuiScroll(ctx context.Context, lines int) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/scroll", map[string]int{"lines": lines})
}

// TuiInput sends text input to the terminal UI.
func (c *Client) TuiInput(ctx context.Context, text string) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/input", map[string]string{"text": text})
}

// TuiCopy copies the terminal UI selection.
func (c *Client) TuiCopy(ctx context.Context) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/copy", nil)
}

// TuiPaste returns the terminal UI clipboard text.
func (c *Client) TuiPaste(ctx context.Context) (string, error) {
	out, err := do[struct {
		Text string `json:"text"`
	}](ctx, c, http.MethodPost, "/tui/paste", nil)

	return out.Text, err
}

// TuiClear clears the terminal UI.
func (c *Client) TuiClear(ctx context.Context) error {
	return c.doNoResult(ctx, http.MethodPost, "/tui/clear", nil)
}

// TuiRenderSnapshot returns a snapshot of the terminal UI contents.
func (c *Client) TuiRenderSnapshot(ctx context.Context) (TuiRender, error) {
	return do[TuiRender](ctx, c, http.MethodGet, "/tui/render", nil)
}

// ListPtys returns all pseudo-terminal sessions.
func (c *Client) ListPtys(ctx context.Context) ([]PtySession, error) {
	return do[[]PtySession](ctx, c, http.MethodGet, "/pty", nil)
}

// CreatePty starts a pseudo-terminal session.
func (c *Client) CreatePty(ctx context.Context, options PtyCreate) (PtySession, error) {
	return do[PtySession](ctx, c, http.MethodPost, "/pty", options)
}

// WritePty writes input to a pseudo-terminal.
func (c *Client) WritePty(ctx context.Context, ptyID, data string) error {
	return c.doNoResult(ctx, http.MethodPost, "/pty/"+ptyID+"/write",
		map[string]string{"data": data})
}

// ResizePty resizes a pseudo-terminal.
func (c *Client) ResizePty(ctx context.Context, ptyID string, cols, rows int) (PtySession, error) {
	return do[PtySession](ctx, c, http.MethodPost, "/pty/"+ptyID+"/resize",
		map[string]int{"cols": cols, "rows": rows})
}

// ClosePty terminates a pseudo-terminal session.
func (c *Client) ClosePty(ctx context.Context, ptyID string) error {
	return c.doNoResult(ctx, http.MethodDelete, "/pty/"+ptyID, nil)
}

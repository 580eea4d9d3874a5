package opencodesdk

import (
	"encoding/json"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Part type constants.
const (
	PartTypeText      = "text"
	PartTypeFile      = "file"
	PartTypeTool      = "tool"
	PartTypeReasoning = "reasoning"
)

// TimeInfo carries the millisecond timestamps attached to most resources.
type TimeInfo struct {
	Created    int64  `json:"created"`
	Updated    int64  `json:"updated"`
	Compacting *int64 `json:"compacting,omitempty"`
	Archived   *int64 `json:"archived,omitempty"`
	Completed  *int64 `json:"completed,omitempty"`
}

// SessionSummary aggregates the file changes a session produced.
type SessionSummary struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Files     int `json:"files"`
}

// SessionInfo describes a conversation session.
//
//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
type SessionInfo struct {
	ID        string          `json:"id"`
	Slug      string          `json:"slug"`
	ProjectID string          `json:"projectID"`
	Directory string          `json:"directory"`
	Title     string          `json:"title"`
	Version   string          `json:"version"`
	Time      TimeInfo        `json:"time"`
	ParentID  *string         `json:"parentID,omitempty"`
	Summary   *SessionSummary `json:"summary,omitempty"`
	ShareURL  *string         `json:"shareURL,omitempty"`
}

// ProjectIcon is the optional icon attached to a project.
type ProjectIcon struct {
	URL      *string `json:"url,omitempty"`
	Override *string `json:"override,omitempty"`
	Color    *string `json:"color,omitempty"`
}

// ProjectCommands holds project-level command overrides.
type ProjectCommands struct {
	Start *string `json:"start,omitempty"`
}

// Project describes a project known to the server.
type Project struct {
	ID        string           `json:"id"`
	Worktree  string           `json:"worktree"`
	VCS       *string          `json:"vcs,omitempty"`
	Name      *string          `json:"name,omitempty"`
	Icon      *ProjectIcon     `json:"icon,omitempty"`
	Commands  *ProjectCommands `json:"commands,omitempty"`
	Time      TimeInfo         `json:"time"`
	Sandboxes []string         `json:"sandboxes,omitempty"`
}

// Part is one piece of a message. Use a type switch over *TextPart,
// *FilePart, *ToolPart, and *ReasoningPart.
type Part interface {
	PartType() string
}

// Compile-time verification that all part types implement Part.
var (
	_ Part = (*TextPart)(nil)
	_ Part = (*FilePart)(nil)
	_ Part = (*ToolPart)(nil)
	_ Part = (*ReasoningPart)(nil)
)

// TextPart contains plain text content. IsDelta marks a streaming fragment
// rather than the accumulated text.
type TextPart struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Text    string `json:"text"`
	IsDelta bool   `json:"-"`
}

// PartType implements the Part interface.
func (p *TextPart) PartType() string { return PartTypeText }

// FilePart references a file attached to a message.
type FilePart struct {
	Type    string  `json:"type"`
	ID      string  `json:"id"`
	File    string  `json:"file"`
	Content *string `json:"content,omitempty"`
}

// PartType implements the Part interface.
func (p *FilePart) PartType() string { return PartTypeFile }

// ToolState tracks a tool invocation through pending, running, completed,
// or error.
type ToolState struct {
	Status string  `json:"status"`
	Error  *string `json:"error,omitempty"`
}

// ToolPart records a tool invocation inside a message.
type ToolPart struct {
	Type  string            `json:"type"`
	ID    string            `json:"id"`
	Tool  string            `json:"tool"`
	Input map[string]string `json:"input,omitempty"`
	State *ToolState        `json:"state,omitempty"`
}

// PartType implements the Part interface.
func (p *ToolPart) PartType() string { return PartTypeTool }

// ReasoningPart contains model reasoning text.
type ReasoningPart struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PartType implements the Part interface.
func (p *ReasoningPart) PartType() string { return PartTypeReasoning }

// UnmarshalPart decodes a single part, dispatching on its "type" tag.
// Unknown types decode as TextPart so new server part kinds degrade
// gracefully instead of failing the whole message.
func UnmarshalPart(data []byte) (Part, error) {
	var tag struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case PartTypeFile:
		var p FilePart

		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}

		return &p, nil

	case PartTypeTool:
		var p ToolPart

		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}

		return &p, nil

	case PartTypeReasoning:
		var p ReasoningPart

		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}

		return &p, nil

	default:
		var p TextPart

		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}

		return &p, nil
	}
}

// ModelRef identifies a provider/model pair.
//
//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
type ModelRef struct {
	ProviderID string `json:"providerID,omitempty"`
	ModelID    string `json:"modelID,omitempty"`
}

// PathInfo carries the working directory context of an assistant message.
type PathInfo struct {
	Cwd  string `json:"cwd"`
	Root string `json:"root"`
}

// TokenCache breaks out prompt-cache token counts.
type TokenCache struct {
	Read  int `json:"read"`
	Write int `json:"write"`
}

// TokenInfo reports token usage for an assistant message.
type TokenInfo struct {
	Input     int        `json:"input"`
	Output    int        `json:"output"`
	Reasoning int        `json:"reasoning"`
	Cache     TokenCache `json:"cache"`
}

// Message is either a *UserMessage or an *AssistantMessage.
type Message interface {
	MessageRole() string
	MessageID() string
}

// Compile-time verification that all message types implement Message.
var (
	_ Message = (*UserMessage)(nil)
	_ Message = (*AssistantMessage)(nil)
)

// UserMessage is a message authored by the user.
//
//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
type UserMessage struct {
	ID        string   `json:"id"`
	SessionID string   `json:"sessionID"`
	Role      string   `json:"role"`
	Time      TimeInfo `json:"time"`
	Agent     string   `json:"agent,omitempty"`
	Model     ModelRef `json:"model,omitempty"`
	System    *string  `json:"system,omitempty"`
	Variant   *string  `json:"variant,omitempty"`
}

// MessageRole implements the Message interface.
func (m *UserMessage) MessageRole() string { return "user" }

// MessageID implements the Message interface.
func (m *UserMessage) MessageID() string { return m.ID }

// AssistantMessage is a message produced by the model.
//
//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
type AssistantMessage struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionID"`
	Role       string    `json:"role"`
	Time       TimeInfo  `json:"time"`
	ParentID   string    `json:"parentID,omitempty"`
	ModelID    string    `json:"modelID,omitempty"`
	ProviderID string    `json:"providerID,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Agent      string    `json:"agent,omitempty"`
	Path       PathInfo  `json:"path,omitempty"`
	Cost       float64   `json:"cost,omitempty"`
	Tokens     TokenInfo `json:"tokens,omitempty"`
	Finish     *string   `json:"finish,omitempty"`
	Summary    *bool     `json:"summary,omitempty"`
}

// MessageRole implements the Message interface.
func (m *AssistantMessage) MessageRole() string { return "assistant" }

// MessageID implements the Message interface.
func (m *AssistantMessage) MessageID() string { return m.ID }

// UnmarshalMessage decodes a message, dispatching on its "role" tag.
// Anything that is not an assistant message decodes as a user message.
func UnmarshalMessage(data []byte) (Message, error) {
	var tag struct {
		Role string `json:"role"`
	}

	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	if tag.Role == "assistant" {
		var m AssistantMessage

		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}

		return &m, nil
	}

	var m UserMessage

	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

// MessageWithParts pairs a message with its parts, as the message endpoints
// return them.
type MessageWithParts struct {
	Info  Message
	Parts []Part
}

// UnmarshalJSON implements json.Unmarshaler, dispatching the info and each
// part through their tag-based decoders.
func (m *MessageWithParts) UnmarshalJSON(data []byte) error {
	var raw struct {
		Info  json.RawMessage   `json:"info"`
		Parts []json.RawMessage `json:"parts"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw.Info) > 0 {
		info, err := UnmarshalMessage(raw.Info)
		if err != nil {
			return err
		}

		m.Info = info
	}

	m.Parts = make([]Part, 0, len(raw.Parts))

	for _, rawPart := range raw.Parts {
		part, err := UnmarshalPart(rawPart)
		if err != nil {
			return err
		}

		m.Parts = append(m.Parts, part)
	}

	return nil
}

// ID returns the message id, or "" when the info is missing.
func (m *MessageWithParts) ID() string {
	if m.Info == nil {
		return ""
	}

	return m.Info.MessageID()
}

// Text concatenates the text parts, newline separated.
func (m *MessageWithParts) Text() string {
	var parts []string

	for _, part := range m.Parts {
		if text, ok := part.(*TextPart); ok {
			parts = append(parts, text.Text)
		}
	}

	return strings.Join(parts, "\n")
}

// IsAssistant reports whether the message came from the model.
func (m *MessageWithParts) IsAssistant() bool {
	_, ok := m.Info.(*AssistantMessage)

	return ok
}

// Tokens returns token usage for assistant messages, nil otherwise.
func (m *MessageWithParts) Tokens() *TokenInfo {
	if a, ok := m.Info.(*AssistantMessage); ok {
		tokens := a.Tokens

		return &tokens
	}

	return nil
}

// Cost returns the cost for assistant messages, nil otherwise.
func (m *MessageWithParts) Cost() *float64 {
	if a, ok := m.Info.(*AssistantMessage); ok {
		cost := a.Cost

		return &cost
	}

	return nil
}

// SessionStatus is the current activity of a session.
//
//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
type SessionStatus struct {
	Status    string  `json:"status"`
	MessageID *string `json:"messageID,omitempty"`
	PartID    *string `json:"partID,omitempty"`
}

// PermissionRequest is a pending permission the server is waiting on.
//
//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
type PermissionRequest struct {
	ID            string   `json:"id"`
	SessionID     string   `json:"sessionID"`
	Permission    string   `json:"permission"`
	Patterns      []string `json:"patterns,omitempty"`
	ToolMessageID *string  `json:"toolMessageID,omitempty"`
	ToolCallID    *string  `json:"toolCallID,omitempty"`
	Time          TimeInfo `json:"time"`
}

// PermissionAction is the reply to a permission request.
type PermissionAction string

// Permission actions.
const (
	PermissionOnce   PermissionAction = "once"
	PermissionAlways PermissionAction = "always"
	PermissionReject PermissionAction = "reject"
)

// PermissionReply answers a pending permission request.
type PermissionReply struct {
	RequestID string
	Action    PermissionAction
	Message   string
}

// HealthInfo is the server health probe result.
type HealthInfo struct {
	Healthy bool   `json:"healthy"`
	Version string `json:"version"`
}

// FileEntry is one directory listing entry.
//
//nolint:tagliatelle // server wire format uses camelCase
type FileEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	IsDirectory bool   `json:"isDirectory"`
	Size        *int64 `json:"size,omitempty"`
	Modified    *int64 `json:"modified,omitempty"`
}

// FileContent is the content of a single file.
type FileContent struct {
	Path     string  `json:"path"`
	Content  string  `json:"content"`
	Encoding *string `json:"encoding,omitempty"`
}

// FileStatus is the VCS status of a single file.
type FileStatus struct {
	Path      string `json:"path"`
	Status    string `json:"status"`
	Additions *int   `json:"additions,omitempty"`
	Deletions *int   `json:"deletions,omitempty"`
}

// TextMatch is one hit from a text search.
type TextMatch struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
	Match  string `json:"match"`
}

// TextSearchResult is the full result of a text search.
//
//nolint:tagliatelle // server wire format uses camelCase
type TextSearchResult struct {
	Matches      []TextMatch `json:"matches"`
	TotalMatches int         `json:"totalMatches"`
	Truncated    bool        `json:"truncated"`
}

// TextSearchOptions parameterizes FindText.
//
//nolint:tagliatelle // server wire format uses camelCase
type TextSearchOptions struct {
	Pattern       string `json:"pattern"`
	Glob          string `json:"glob,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Regex         bool   `json:"regex,omitempty"`
	CaseSensitive bool   `json:"caseSensitive,omitempty"`
}

// FileMatch is one hit from a file name search.
//
//nolint:tagliatelle // server wire format uses camelCase
type FileMatch struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	IsDirectory bool   `json:"isDirectory"`
}

// FileSearchOptions parameterizes FindFiles.
type FileSearchOptions struct {
	Pattern string `json:"pattern"`
	Limit   int    `json:"limit,omitempty"`
}

// SymbolMatch is one hit from a workspace symbol search.
type SymbolMatch struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Path      string  `json:"path"`
	Line      int     `json:"line"`
	Column    int     `json:"column"`
	Container *string `json:"container,omitempty"`
}

// SymbolSearchOptions parameterizes FindSymbols.
type SymbolSearchOptions struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// ModelDetails describes one model a provider offers. Costs are per
// million tokens.
//
//nolint:tagliatelle // server wire format uses camelCase
type ModelDetails struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	ContextLength *int     `json:"contextLength,omitempty"`
	InputCost     *float64 `json:"inputCost,omitempty"`
	OutputCost    *float64 `json:"outputCost,omitempty"`
}

// ProviderDetails describes one configured model provider.
type ProviderDetails struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Models     []ModelDetails `json:"models,omitempty"`
	Configured bool           `json:"configured"`
	Error      *string        `json:"error,omitempty"`
}

// ModeInfo describes an interaction mode.
type ModeInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// AgentInfo describes an available agent.
type AgentInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SkillInfo describes an installed skill.
type SkillInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Commands    []string `json:"commands,omitempty"`
}

// LogLevel selects the severity for the server-side Log operation.
type LogLevel string

// Log levels.
const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// ConfigProvider is the per-provider slice of the server configuration.
//
//nolint:tagliatelle // server wire format uses camelCase
type ConfigProvider struct {
	ID        string  `json:"id"`
	Enabled   bool    `json:"enabled"`
	APIKeyEnv *string `json:"apiKeyEnv,omitempty"`
	HasKey    bool    `json:"hasKey"`
}

// Config is the server configuration document.
//
//nolint:tagliatelle // server wire format uses camelCase
type Config struct {
	DefaultProvider *string          `json:"defaultProvider,omitempty"`
	DefaultModel    *string          `json:"defaultModel,omitempty"`
	AutoApprove     *bool            `json:"autoApprove,omitempty"`
	MaxTokens       *int             `json:"maxTokens,omitempty"`
	Temperature     *float64         `json:"temperature,omitempty"`
	Theme           *string          `json:"theme,omitempty"`
	ShowCost        *bool            `json:"showCost,omitempty"`
	Providers       []ConfigProvider `json:"providers,omitempty"`
}

// ConfigUpdate is a partial configuration patch; nil fields are untouched.
//
//nolint:tagliatelle // server wire format uses camelCase
type ConfigUpdate struct {
	DefaultProvider *string  `json:"defaultProvider,omitempty"`
	DefaultModel    *string  `json:"defaultModel,omitempty"`
	AutoApprove     *bool    `json:"autoApprove,omitempty"`
	MaxTokens       *int     `json:"maxTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

// McpTool is a tool exposed by an MCP server.
type McpTool struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// McpResource is a resource exposed by an MCP server.
//
//nolint:tagliatelle // server wire format uses camelCase
type McpResource struct {
	URI         string  `json:"uri"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	MimeType    *string `json:"mimeType,omitempty"`
}

// McpServer describes one MCP server registration and its connection state.
type McpServer struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    string        `json:"status"`
	Error     *string       `json:"error,omitempty"`
	Tools     []McpTool     `json:"tools,omitempty"`
	Resources []McpResource `json:"resources,omitempty"`
}

// McpServerConfig registers a new MCP server.
type McpServerConfig struct {
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// McpStatus lists all MCP server registrations.
type McpStatus struct {
	Servers []McpServer `json:"servers"`
}

// QuestionOption is one selectable answer to a question.
type QuestionOption struct {
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
}

// Question is a pending question the server is waiting on.
//
//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
type Question struct {
	ID           string           `json:"id"`
	SessionID    string           `json:"sessionID"`
	Text         string           `json:"text"`
	Type         string           `json:"type"`
	Options      []QuestionOption `json:"options,omitempty"`
	DefaultValue *string          `json:"defaultValue,omitempty"`
	Time         TimeInfo         `json:"time"`
}

// QuestionReply answers a pending question.
type QuestionReply struct {
	QuestionID string
	Answer     string
}

// Worktree describes one VCS worktree.
//
//nolint:tagliatelle // server wire format uses camelCase
type Worktree struct {
	ID         string   `json:"id"`
	Path       string   `json:"path"`
	Branch     string   `json:"branch"`
	IsMain     bool     `json:"isMain"`
	Commit     *string  `json:"commit,omitempty"`
	IsBare     *bool    `json:"isBare,omitempty"`
	IsDetached *bool    `json:"isDetached,omitempty"`
	Time       TimeInfo `json:"time"`
}

// WorktreeCreate parameterizes CreateWorktree.
//
//nolint:tagliatelle // server wire format uses camelCase
type WorktreeCreate struct {
	Branch       string `json:"branch"`
	Path         string `json:"path,omitempty"`
	Base         string `json:"base,omitempty"`
	CreateBranch bool   `json:"createBranch,omitempty"`
}

// ToolInfo describes one tool the server can run. Parameters is the JSON
// Schema the server publishes for the tool's input.
type ToolInfo struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Enabled     bool               `json:"enabled"`
}

// LspServer is one language server's status.
type LspServer struct {
	Language string  `json:"language"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Version  *string `json:"version,omitempty"`
	Error    *string `json:"error,omitempty"`
	PID      *int    `json:"pid,omitempty"`
}

// LspStatus lists all language servers.
type LspStatus struct {
	Servers []LspServer `json:"servers"`
}

// Formatter is one formatter's availability.
type Formatter struct {
	Language string  `json:"language"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Version  *string `json:"version,omitempty"`
	Error    *string `json:"error,omitempty"`
}

// FormatterStatus lists all formatters.
type FormatterStatus struct {
	Formatters []Formatter `json:"formatters"`
}

// AuthCredentials configures provider authentication.
//
//nolint:tagliatelle // server wire format uses camelCase
type AuthCredentials struct {
	APIKey       string `json:"apiKey"`
	APIBase      string `json:"apiBase,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// AuthResult reports the outcome of an auth change.
type AuthResult struct {
	Success bool    `json:"success"`
	Error   *string `json:"error,omitempty"`
}

// TuiSize is a terminal dimension in cells.
type TuiSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TuiPosition is a cell coordinate.
type TuiPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TuiSelection is a selected terminal region.
type TuiSelection struct {
	Start TuiPosition `json:"start"`
	End   TuiPosition `json:"end"`
}

// TuiStatus is the state of the server-side terminal UI.
type TuiStatus struct {
	Open      bool          `json:"open"`
	Focused   bool          `json:"focused"`
	Size      TuiSize       `json:"size"`
	Selection *TuiSelection `json:"selection,omitempty"`
}

// TuiRender is a snapshot of the terminal UI contents. Lines may contain
// ANSI escape codes.
type TuiRender struct {
	Lines []string `json:"lines"`
	Size  TuiSize  `json:"size"`
}

// PtySession describes one pseudo-terminal the server manages.
//
//nolint:tagliatelle // server wire format uses camelCase
type PtySession struct {
	ID       string   `json:"id"`
	Shell    string   `json:"shell"`
	PID      int      `json:"pid"`
	Cols     int      `json:"cols"`
	Rows     int      `json:"rows"`
	Status   string   `json:"status"`
	ExitCode *int     `json:"exitCode,omitempty"`
	Time     TimeInfo `json:"time"`
}

// PtyCreate parameterizes CreatePty. Zero values fall back to the server's
// defaults.
type PtyCreate struct {
	Shell string            `json:"shell,omitempty"`
	Cwd   string            `json:"cwd,omitempty"`
	Cols  int               `json:"cols,omitempty"`
	Rows  int               `json:"rows,omitempty"`
	Env   map[string]string `json:"env,omitempty"`
}

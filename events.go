package opencodesdk

import (
	"encoding/json"

	"github.com/wagiedev/opencode-sdk-go/internal/errors"
)

// Event type constants, matching the "type" tag of the event channel's wire
// format.
const (
	EventTypeServerConnected             = "server.connected"
	EventTypeServerHeartbeat             = "server.heartbeat"
	EventTypeServerInstanceDisposed      = "server.instance.disposed"
	EventTypeGlobalDisposed              = "global.disposed"
	EventTypeSessionCreated              = "session.created"
	EventTypeSessionUpdated              = "session.updated"
	EventTypeSessionDeleted              = "session.deleted"
	EventTypeSessionStatus               = "session.status"
	EventTypeSessionIdle                 = "session.idle"
	EventTypeSessionError                = "session.error"
	EventTypeMessageUpdated              = "message.updated"
	EventTypeMessageRemoved              = "message.removed"
	EventTypeMessagePartUpdated          = "message.part.updated"
	EventTypeMessagePartRemoved          = "message.part.removed"
	EventTypePermissionAsked             = "permission.asked"
	EventTypePermissionReplied           = "permission.replied"
	EventTypeProjectUpdated              = "project.updated"
	EventTypeFileEdited                  = "file.edited"
	EventTypeInstallationUpdated         = "installation.updated"
	EventTypeInstallationUpdateAvailable = "installation.update-available"
)

// Event is one notification from the server's event channel. Use a type
// switch to determine the concrete type.
type Event interface {
	EventType() string
}

// Compile-time verification that all event types implement Event.
var (
	_ Event = (*ServerConnectedEvent)(nil)
	_ Event = (*ServerHeartbeatEvent)(nil)
	_ Event = (*ServerInstanceDisposedEvent)(nil)
	_ Event = (*GlobalDisposedEvent)(nil)
	_ Event = (*SessionCreatedEvent)(nil)
	_ Event = (*SessionUpdatedEvent)(nil)
	_ Event = (*SessionDeletedEvent)(nil)
	_ Event = (*SessionStatusEvent)(nil)
	_ Event = (*SessionIdleEvent)(nil)
	_ Event = (*SessionErrorEvent)(nil)
	_ Event = (*MessageUpdatedEvent)(nil)
	_ Event = (*MessageRemovedEvent)(nil)
	_ Event = (*MessagePartUpdatedEvent)(nil)
	_ Event = (*MessagePartRemovedEvent)(nil)
	_ Event = (*PermissionAskedEvent)(nil)
	_ Event = (*PermissionRepliedEvent)(nil)
	_ Event = (*ProjectUpdatedEvent)(nil)
	_ Event = (*FileEditedEvent)(nil)
	_ Event = (*InstallationUpdatedEvent)(nil)
	_ Event = (*InstallationUpdateAvailableEvent)(nil)
)

// ServerConnectedEvent signals the event channel is established.
type ServerConnectedEvent struct{}

// EventType implements the Event interface.
func (e *ServerConnectedEvent) EventType() string { return EventTypeServerConnected }

// ServerHeartbeatEvent is the server's periodic keepalive.
type ServerHeartbeatEvent struct{}

// EventType implements the Event interface.
func (e *ServerHeartbeatEvent) EventType() string { return EventTypeServerHeartbeat }

// ServerInstanceDisposedEvent signals a per-directory server instance shut
// down.
type ServerInstanceDisposedEvent struct {
	Directory string
}

// EventType implements the Event interface.
func (e *ServerInstanceDisposedEvent) EventType() string { return EventTypeServerInstanceDisposed }

// GlobalDisposedEvent signals the whole server is shutting down.
type GlobalDisposedEvent struct{}

// EventType implements the Event interface.
func (e *GlobalDisposedEvent) EventType() string { return EventTypeGlobalDisposed }

// SessionCreatedEvent carries a newly created session.
type SessionCreatedEvent struct {
	Session SessionInfo
}

// EventType implements the Event interface.
func (e *SessionCreatedEvent) EventType() string { return EventTypeSessionCreated }

// SessionUpdatedEvent carries an updated session.
type SessionUpdatedEvent struct {
	Session SessionInfo
}

// EventType implements the Event interface.
func (e *SessionUpdatedEvent) EventType() string { return EventTypeSessionUpdated }

// SessionDeletedEvent signals a session was deleted.
type SessionDeletedEvent struct {
	SessionID string
}

// EventType implements the Event interface.
func (e *SessionDeletedEvent) EventType() string { return EventTypeSessionDeleted }

// SessionStatusEvent carries a session's activity change.
type SessionStatusEvent struct {
	SessionID string
	Status    SessionStatus
}

// EventType implements the Event interface.
func (e *SessionStatusEvent) EventType() string { return EventTypeSessionStatus }

// SessionIdleEvent signals a session finished generating.
type SessionIdleEvent struct {
	SessionID string
}

// EventType implements the Event interface.
func (e *SessionIdleEvent) EventType() string { return EventTypeSessionIdle }

// SessionErrorEvent carries a session-level error.
type SessionErrorEvent struct {
	SessionID string
	Error     string
}

// EventType implements the Event interface.
func (e *SessionErrorEvent) EventType() string { return EventTypeSessionError }

// MessageUpdatedEvent carries a created or updated message.
type MessageUpdatedEvent struct {
	Info Message
}

// EventType implements the Event interface.
func (e *MessageUpdatedEvent) EventType() string { return EventTypeMessageUpdated }

// MessageRemovedEvent signals a message was removed.
type MessageRemovedEvent struct {
	SessionID string
	MessageID string
}

// EventType implements the Event interface.
func (e *MessageRemovedEvent) EventType() string { return EventTypeMessageRemoved }

// MessagePartUpdatedEvent carries a created or updated message part. Delta
// holds the streaming text fragment when the server sends one.
type MessagePartUpdatedEvent struct {
	SessionID string
	MessageID string
	Part      Part
	Delta     string
}

// EventType implements the Event interface.
func (e *MessagePartUpdatedEvent) EventType() string { return EventTypeMessagePartUpdated }

// MessagePartRemovedEvent signals a message part was removed.
type MessagePartRemovedEvent struct {
	SessionID string
	MessageID string
	PartID    string
}

// EventType implements the Event interface.
func (e *MessagePartRemovedEvent) EventType() string { return EventTypeMessagePartRemoved }

// PermissionAskedEvent carries a new pending permission request.
type PermissionAskedEvent struct {
	Request PermissionRequest
}

// EventType implements the Event interface.
func (e *PermissionAskedEvent) EventType() string { return EventTypePermissionAsked }

// PermissionRepliedEvent signals a permission request was answered.
type PermissionRepliedEvent struct {
	RequestID string
	SessionID string
	Reply     string
}

// EventType implements the Event interface.
func (e *PermissionRepliedEvent) EventType() string { return EventTypePermissionReplied }

// ProjectUpdatedEvent carries an updated project.
type ProjectUpdatedEvent struct {
	Project Project
}

// EventType implements the Event interface.
func (e *ProjectUpdatedEvent) EventType() string { return EventTypeProjectUpdated }

// FileEditedEvent signals a file was edited by the server.
type FileEditedEvent struct {
	File string
}

// EventType implements the Event interface.
func (e *FileEditedEvent) EventType() string { return EventTypeFileEdited }

// InstallationUpdatedEvent signals the server installation was updated.
type InstallationUpdatedEvent struct {
	Version string
}

// EventType implements the Event interface.
func (e *InstallationUpdatedEvent) EventType() string { return EventTypeInstallationUpdated }

// InstallationUpdateAvailableEvent signals a newer server version exists.
type InstallationUpdateAvailableEvent struct {
	Version string
}

// EventType implements the Event interface.
func (e *InstallationUpdateAvailableEvent) EventType() string {
	return EventTypeInstallationUpdateAvailable
}

// eventEnvelope is the wire shape of one record on the event channel.
type eventEnvelope struct {
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties"`
}

// UnmarshalEvent decodes one event channel record. Unknown event types
// return (nil, nil) so new server versions never break consumers; malformed
// payloads return *errors.EventParseError.
func UnmarshalEvent(data []byte) (Event, error) {
	var envelope eventEnvelope

	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &errors.EventParseError{RawData: string(data), Err: err}
	}

	event, err := unmarshalEventProperties(envelope.Type, envelope.Properties)
	if err != nil {
		return nil, &errors.EventParseError{RawData: string(data), Err: err}
	}

	return event, nil
}

//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
func unmarshalEventProperties(eventType string, props json.RawMessage) (Event, error) {
	switch eventType {
	case EventTypeServerConnected:
		return &ServerConnectedEvent{}, nil

	case EventTypeServerHeartbeat:
		return &ServerHeartbeatEvent{}, nil

	case EventTypeServerInstanceDisposed:
		var p struct {
			Directory string `json:"directory"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &ServerInstanceDisposedEvent{Directory: p.Directory}, nil

	case EventTypeGlobalDisposed:
		return &GlobalDisposedEvent{}, nil

	case EventTypeSessionCreated, EventTypeSessionUpdated:
		var session SessionInfo

		if err := json.Unmarshal(props, &session); err != nil {
			return nil, err
		}

		if eventType == EventTypeSessionCreated {
			return &SessionCreatedEvent{Session: session}, nil
		}

		return &SessionUpdatedEvent{Session: session}, nil

	case EventTypeSessionDeleted:
		var p struct {
			SessionID string `json:"sessionID"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &SessionDeletedEvent{SessionID: p.SessionID}, nil

	case EventTypeSessionStatus:
		var p struct {
			SessionID string        `json:"sessionID"`
			Status    SessionStatus `json:"status"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &SessionStatusEvent{SessionID: p.SessionID, Status: p.Status}, nil

	case EventTypeSessionIdle:
		var p struct {
			SessionID string `json:"sessionID"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &SessionIdleEvent{SessionID: p.SessionID}, nil

	case EventTypeSessionError:
		var p struct {
			SessionID string `json:"sessionID"`
			Error     string `json:"error"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &SessionErrorEvent{SessionID: p.SessionID, Error: p.Error}, nil

	case EventTypeMessageUpdated:
		var p struct {
			Info json.RawMessage `json:"info"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		info, err := UnmarshalMessage(p.Info)
		if err != nil {
			return nil, err
		}

		return &MessageUpdatedEvent{Info: info}, nil

	case EventTypeMessageRemoved:
		var p struct {
			SessionID string `json:"sessionID"`
			MessageID string `json:"messageID"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &MessageRemovedEvent{SessionID: p.SessionID, MessageID: p.MessageID}, nil

	case EventTypeMessagePartUpdated:
		return unmarshalPartUpdated(props)

	case EventTypeMessagePartRemoved:
		var p struct {
			SessionID string `json:"sessionID"`
			MessageID string `json:"messageID"`
			PartID    string `json:"partID"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &MessagePartRemovedEvent{
			SessionID: p.SessionID,
			MessageID: p.MessageID,
			PartID:    p.PartID,
		}, nil

	case EventTypePermissionAsked:
		var request PermissionRequest

		if err := json.Unmarshal(props, &request); err != nil {
			return nil, err
		}

		return &PermissionAskedEvent{Request: request}, nil

	case EventTypePermissionReplied:
		var p struct {
			RequestID string `json:"requestID"`
			SessionID string `json:"sessionID"`
			Reply     string `json:"reply"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &PermissionRepliedEvent{
			RequestID: p.RequestID,
			SessionID: p.SessionID,
			Reply:     p.Reply,
		}, nil

	case EventTypeProjectUpdated:
		var project Project

		if err := json.Unmarshal(props, &project); err != nil {
			return nil, err
		}

		return &ProjectUpdatedEvent{Project: project}, nil

	case EventTypeFileEdited:
		var p struct {
			File string `json:"file"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		return &FileEditedEvent{File: p.File}, nil

	case EventTypeInstallationUpdated, EventTypeInstallationUpdateAvailable:
		var p struct {
			Version string `json:"version"`
		}

		if err := json.Unmarshal(props, &p); err != nil {
			return nil, err
		}

		if eventType == EventTypeInstallationUpdated {
			return &InstallationUpdatedEvent{Version: p.Version}, nil
		}

		return &InstallationUpdateAvailableEvent{Version: p.Version}, nil

	default:
		// Unknown event kinds are skipped, not failed.
		return nil, nil
	}
}

// unmarshalPartUpdated handles the part-update payload, whose session and
// message ids live on the part object itself.
//
//nolint:tagliatelle // server wire format uses camelCase with ID suffixes
func unmarshalPartUpdated(props json.RawMessage) (Event, error) {
	var p struct {
		Part  json.RawMessage `json:"part"`
		Delta string          `json:"delta"`
	}

	if err := json.Unmarshal(props, &p); err != nil {
		return nil, err
	}

	if len(p.Part) == 0 {
		return nil, nil
	}

	var ids struct {
		SessionID string `json:"sessionID"`
		MessageID string `json:"messageID"`
	}

	if err := json.Unmarshal(p.Part, &ids); err != nil {
		return nil, err
	}

	part, err := UnmarshalPart(p.Part)
	if err != nil {
		return nil, err
	}

	return &MessagePartUpdatedEvent{
		SessionID: ids.SessionID,
		MessageID: ids.MessageID,
		Part:      part,
		Delta:     p.Delta,
	}, nil
}

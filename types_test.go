package opencodesdk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalPart_DispatchesOnType(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"text", `{"type":"text","id":"prt_1","text":"hello"}`, PartTypeText},
		{"file", `{"type":"file","id":"prt_2","file":"main.go"}`, PartTypeFile},
		{"tool", `{"type":"tool","id":"prt_3","tool":"bash"}`, PartTypeTool},
		{"reasoning", `{"type":"reasoning","id":"prt_4","text":"hmm"}`, PartTypeReasoning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, err := UnmarshalPart([]byte(tt.data))

			require.NoError(t, err)
			assert.Equal(t, tt.want, part.PartType())
		})
	}
}

func TestUnmarshalPart_UnknownTypeFallsBackToText(t *testing.T) {
	part, err := UnmarshalPart([]byte(`{"type":"snapshot","id":"prt_9","text":"x"}`))

	require.NoError(t, err)

	text, ok := part.(*TextPart)

	require.True(t, ok)
	assert.Equal(t, "x", text.Text)
}

func TestUnmarshalPart_ToolStateAndInput(t *testing.T) {
	data := `{
		"type": "tool",
		"id": "prt_5",
		"tool": "bash",
		"input": {"command": "ls"},
		"state": {"status": "completed"}
	}`

	part, err := UnmarshalPart([]byte(data))
	require.NoError(t, err)

	tool, ok := part.(*ToolPart)

	require.True(t, ok)
	assert.Equal(t, "bash", tool.Tool)
	assert.Equal(t, "ls", tool.Input["command"])
	require.NotNil(t, tool.State)
	assert.Equal(t, "completed", tool.State.Status)
}

func TestUnmarshalMessage_DispatchesOnRole(t *testing.T) {
	user, err := UnmarshalMessage([]byte(`{"id":"msg_1","sessionID":"ses_1","role":"user"}`))
	require.NoError(t, err)
	assert.Equal(t, "user", user.MessageRole())
	assert.Equal(t, "msg_1", user.MessageID())

	assistant, err := UnmarshalMessage([]byte(`{
		"id": "msg_2",
		"sessionID": "ses_1",
		"role": "assistant",
		"providerID": "anthropic",
		"modelID": "claude-sonnet-4-5",
		"cost": 0.02,
		"tokens": {"input": 10, "output": 20, "cache": {"read": 5}}
	}`))
	require.NoError(t, err)

	a, ok := assistant.(*AssistantMessage)

	require.True(t, ok)
	assert.Equal(t, "anthropic", a.ProviderID)
	assert.Equal(t, 10, a.Tokens.Input)
	assert.Equal(t, 5, a.Tokens.Cache.Read)
	assert.InDelta(t, 0.02, a.Cost, 1e-9)
}

func TestMessageWithParts_UnmarshalAndHelpers(t *testing.T) {
	data := `{
		"info": {"id": "msg_3", "sessionID": "ses_1", "role": "assistant", "cost": 0.5,
		         "tokens": {"input": 1, "output": 2}},
		"parts": [
			{"type": "text", "id": "prt_1", "text": "first"},
			{"type": "tool", "id": "prt_2", "tool": "bash"},
			{"type": "text", "id": "prt_3", "text": "second"}
		]
	}`

	var msg MessageWithParts

	require.NoError(t, json.Unmarshal([]byte(data), &msg))

	assert.Equal(t, "msg_3", msg.ID())
	assert.True(t, msg.IsAssistant())
	assert.Equal(t, "first\nsecond", msg.Text())

	tokens := msg.Tokens()
	require.NotNil(t, tokens)
	assert.Equal(t, 2, tokens.Output)

	cost := msg.Cost()
	require.NotNil(t, cost)
	assert.InDelta(t, 0.5, *cost, 1e-9)
}

func TestMessageWithParts_UserMessageHasNoTokens(t *testing.T) {
	data := `{"info": {"id": "msg_4", "role": "user"}, "parts": []}`

	var msg MessageWithParts

	require.NoError(t, json.Unmarshal([]byte(data), &msg))

	assert.False(t, msg.IsAssistant())
	assert.Nil(t, msg.Tokens())
	assert.Nil(t, msg.Cost())
	assert.Empty(t, msg.Text())
}

func TestSessionInfo_RoundTripsWireNames(t *testing.T) {
	data := `{
		"id": "ses_1",
		"slug": "my-session",
		"projectID": "prj_1",
		"directory": "/work",
		"title": "My Session",
		"version": "1.0.0",
		"time": {"created": 100, "updated": 200},
		"parentID": "ses_0",
		"shareURL": "https://opencode.ai/s/abc"
	}`

	var info SessionInfo

	require.NoError(t, json.Unmarshal([]byte(data), &info))

	assert.Equal(t, "prj_1", info.ProjectID)
	require.NotNil(t, info.ParentID)
	assert.Equal(t, "ses_0", *info.ParentID)
	require.NotNil(t, info.ShareURL)
	assert.Equal(t, "https://opencode.ai/s/abc", *info.ShareURL)

	out, err := json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"projectID":"prj_1"`)
}

func TestToolInfo_ParametersSchema(t *testing.T) {
	data := `{
		"id": "bash",
		"name": "Bash",
		"enabled": true,
		"parameters": {
			"type": "object",
			"properties": {"command": {"type": "string"}},
			"required": ["command"]
		}
	}`

	var tool ToolInfo

	require.NoError(t, json.Unmarshal([]byte(data), &tool))

	require.NotNil(t, tool.Parameters)
	assert.Equal(t, "object", tool.Parameters.Type)
	assert.Contains(t, tool.Parameters.Properties, "command")
	assert.Equal(t, []string{"command"}, tool.Parameters.Required)
}

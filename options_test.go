package opencodesdk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyOptions_Defaults(t *testing.T) {
	options := applyOptions(nil)

	assert.Equal(t, "opencode", options.BinaryPath)
	assert.Equal(t, 10*time.Second, options.StartupTimeout)
	assert.Equal(t, 30*time.Second, options.ConnectionTimeout)
	assert.Equal(t, 300*time.Second, options.ReadTimeout)
	assert.Empty(t, options.BaseURL)
}

func TestApplyOptions_AppliesInOrder(t *testing.T) {
	options := applyOptions([]Option{
		WithBaseURL("http://127.0.0.1:4096"),
		WithDirectory("/work"),
		WithBasicAuth("alice", "s3cret"),
		WithDefaultModel("anthropic", "claude-sonnet-4-5"),
		WithStartupTimeout(time.Minute),
		WithConfigJSON(`{"theme":"dark"}`),
		WithMdns(),
		WithEnv(map[string]string{"A": "1"}),
	})

	assert.Equal(t, "http://127.0.0.1:4096", options.BaseURL)
	assert.Equal(t, "/work", options.Directory)
	assert.Equal(t, "alice", options.Username)
	assert.Equal(t, "s3cret", options.Password)
	assert.Equal(t, "anthropic", options.DefaultProvider)
	assert.Equal(t, "claude-sonnet-4-5", options.DefaultModel)
	assert.Equal(t, time.Minute, options.StartupTimeout)
	assert.Equal(t, `{"theme":"dark"}`, options.ConfigJSON)
	assert.True(t, options.Mdns)
	assert.Equal(t, "1", options.Env["A"])
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	logger := NopLogger()

	logger.Info("discarded", "key", "value")
	logger.Error("also discarded")
}

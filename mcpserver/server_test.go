package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/isdmx/boxgate/config"
)

// MockLifecycle implements sandbox.Lifecycle for testing
type MockLifecycle struct {
	createID    string
	createErr   error
	teardownErr error

	createdImages []string
	tornDownIDs   []string
}

func (m *MockLifecycle) CreateSandbox(_ context.Context, imageRef string) (string, error) {
	m.createdImages = append(m.createdImages, imageRef)
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.createID, nil
}

func (m *MockLifecycle) TeardownSandbox(_ context.Context, id string) error {
	m.tornDownIDs = append(m.tornDownIDs, id)
	return m.teardownErr
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Transport: "stdio",
			HTTPPort:  8080,
		},
		Logging: config.LoggingConfig{
			Mode:  "production",
			Level: "info",
		},
		Sandbox: config.SandboxConfig{
			DefaultImage:   "python:3.12-slim-bookworm",
			WorkDir:        "/app",
			StopTimeoutSec: 10,
		},
	}
}

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func TestNewMCPServer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := testConfig()
	mockLifecycle := &MockLifecycle{}

	server, err := New(cfg, logger, mockLifecycle)
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.Equal(t, cfg, server.config)
	assert.Equal(t, logger, server.logger)
	assert.Equal(t, mockLifecycle, server.lifecycle)
	assert.NotNil(t, server.mcpServer)
}

func TestHandleInitializeEnvironment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockLifecycle := &MockLifecycle{createID: "c0ffee1234"}
		server, err := New(testConfig(), zaptest.NewLogger(t), mockLifecycle)
		require.NoError(t, err)

		result, err := server.handleInitializeEnvironment(context.Background(),
			callToolRequest(map[string]any{"image": "python:3.12-slim-bookworm"}))
		require.NoError(t, err)

		assert.Equal(t, "container_id: c0ffee1234", resultText(t, result))
		assert.Equal(t, []string{"python:3.12-slim-bookworm"}, mockLifecycle.createdImages)
	})

	t.Run("MissingImagePassesEmptyRef", func(t *testing.T) {
		// Default image substitution is the lifecycle service's job; the
		// tool layer forwards the empty reference untouched.
		mockLifecycle := &MockLifecycle{createID: "abc"}
		server, err := New(testConfig(), zaptest.NewLogger(t), mockLifecycle)
		require.NoError(t, err)

		result, err := server.handleInitializeEnvironment(context.Background(),
			callToolRequest(map[string]any{}))
		require.NoError(t, err)

		assert.Equal(t, "container_id: abc", resultText(t, result))
		assert.Equal(t, []string{""}, mockLifecycle.createdImages)
	})

	t.Run("FailureIsTextPayload", func(t *testing.T) {
		mockLifecycle := &MockLifecycle{
			createErr: errors.New("image ghost:does-not-exist not found locally, build or load it before initializing a sandbox"),
		}
		server, err := New(testConfig(), zaptest.NewLogger(t), mockLifecycle)
		require.NoError(t, err)

		result, err := server.handleInitializeEnvironment(context.Background(),
			callToolRequest(map[string]any{"image": "ghost:does-not-exist"}))
		require.NoError(t, err)

		text := resultText(t, result)
		assert.Contains(t, text, "Error: ")
		assert.Contains(t, text, "not found locally")
	})
}

func TestHandleStopContainer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockLifecycle := &MockLifecycle{}
		server, err := New(testConfig(), zaptest.NewLogger(t), mockLifecycle)
		require.NoError(t, err)

		result, err := server.handleStopContainer(context.Background(),
			callToolRequest(map[string]any{"container_id": "c0ffee1234"}))
		require.NoError(t, err)

		assert.Equal(t, "Successfully stopped and removed container: c0ffee1234", resultText(t, result))
		assert.Equal(t, []string{"c0ffee1234"}, mockLifecycle.tornDownIDs)
	})

	t.Run("MissingContainerID", func(t *testing.T) {
		mockLifecycle := &MockLifecycle{}
		server, err := New(testConfig(), zaptest.NewLogger(t), mockLifecycle)
		require.NoError(t, err)

		result, err := server.handleStopContainer(context.Background(),
			callToolRequest(map[string]any{}))
		require.NoError(t, err)

		assert.Equal(t, "Error: container_id is required", resultText(t, result))
		assert.Empty(t, mockLifecycle.tornDownIDs)
	})

	t.Run("FailureIsTextPayload", func(t *testing.T) {
		mockLifecycle := &MockLifecycle{
			teardownErr: errors.New("failed to remove container c0ffee1234: driver busy"),
		}
		server, err := New(testConfig(), zaptest.NewLogger(t), mockLifecycle)
		require.NoError(t, err)

		result, err := server.handleStopContainer(context.Background(),
			callToolRequest(map[string]any{"container_id": "c0ffee1234"}))
		require.NoError(t, err)

		text := resultText(t, result)
		assert.Contains(t, text, "Error: ")
		assert.Contains(t, text, "driver busy")
	})
}

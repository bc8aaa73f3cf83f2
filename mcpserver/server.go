package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/isdmx/boxgate/config"
	"github.com/isdmx/boxgate/sandbox"
)

// MCPServer represents the MCP server
type MCPServer struct {
	config    *config.Config
	logger    *zap.Logger
	lifecycle sandbox.Lifecycle
	mcpServer *server.MCPServer
}

// New creates a new MCPServer
func New(cfg *config.Config, logger *zap.Logger, lifecycle sandbox.Lifecycle) (*MCPServer, error) {
	s := &MCPServer{
		config:    cfg,
		logger:    logger,
		lifecycle: lifecycle,
	}

	// Log configuration parameters on startup
	logger.Info("configuration loaded",
		zap.String("server.transport", cfg.Server.Transport),
		zap.Int("server.http_port", cfg.Server.HTTPPort),
		zap.String("docker.host", cfg.Docker.Host),
		zap.String("docker.api_version", cfg.Docker.APIVersion),
		zap.String("sandbox.default_image", cfg.Sandbox.DefaultImage),
		zap.String("sandbox.workdir", cfg.Sandbox.WorkDir),
		zap.Int("sandbox.stop_timeout_sec", cfg.Sandbox.StopTimeoutSec),
		zap.Int("sandbox.memory_mb", cfg.Sandbox.MemoryMB),
		zap.Float64("sandbox.cpu_cores", cfg.Sandbox.CPUCores),
		zap.Int("sandbox.pids_limit", cfg.Sandbox.PIDsLimit),
	)

	// Create the MCP server
	s.mcpServer = server.NewMCPServer("boxgate", "A sandbox lifecycle gateway for code execution environments")

	// Register the lifecycle tools
	s.registerInitializeEnvironmentTool()
	s.registerStopContainerTool()

	return s, nil
}

// registerInitializeEnvironmentTool registers the initialize_environment tool
func (s *MCPServer) registerInitializeEnvironmentTool() {
	tool := mcp.Tool{
		Name:        "initialize_environment",
		Description: "Create and start an isolated container for running code",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"image": map[string]any{
					"type": "string",
					"description": fmt.Sprintf(
						"Container image to use; must already be present locally (defaults to %s)",
						s.config.Sandbox.DefaultImage),
				},
			},
		},
	}

	s.mcpServer.AddTool(tool, s.handleInitializeEnvironment)
}

// registerStopContainerTool registers the stop_container tool
func (s *MCPServer) registerStopContainerTool() {
	tool := mcp.Tool{
		Name:        "stop_container",
		Description: "Stop and remove a container previously created by initialize_environment",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"container_id": map[string]any{
					"type":        "string",
					"description": "Identity returned by initialize_environment",
				},
			},
			Required: []string{"container_id"},
		},
	}

	s.mcpServer.AddTool(tool, s.handleStopContainer)
}

// handleInitializeEnvironment handles the initialize_environment tool
func (s *MCPServer) handleInitializeEnvironment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	image := request.GetString("image", "")

	s.logger.Info("sandbox initialization requested", zap.String("image", image))

	id, err := s.lifecycle.CreateSandbox(ctx, image)
	if err != nil {
		s.logger.Error("sandbox initialization failed",
			zap.String("image", image),
			zap.String("kind", string(sandbox.KindOf(err))),
			zap.Error(err))
		return mcp.NewToolResultText(fmt.Sprintf("Error: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("container_id: %s", id)), nil
}

// handleStopContainer handles the stop_container tool
func (s *MCPServer) handleStopContainer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("container_id", "")
	if id == "" {
		return mcp.NewToolResultText("Error: container_id is required"), nil
	}

	s.logger.Info("sandbox teardown requested", zap.String("container_id", id))

	if err := s.lifecycle.TeardownSandbox(ctx, id); err != nil {
		s.logger.Error("sandbox teardown failed",
			zap.String("container_id", id),
			zap.String("kind", string(sandbox.KindOf(err))),
			zap.Error(err))
		return mcp.NewToolResultText(fmt.Sprintf("Error: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully stopped and removed container: %s", id)), nil
}

// ServeStdio starts the server on stdio
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP starts the server on HTTP
func (s *MCPServer) ServeHTTP() error {
	port := s.config.Server.HTTPPort
	s.logger.Info("starting MCP server on HTTP", zap.Int("port", port))

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	return httpServer.Start(fmt.Sprintf(":%d", port))
}

// GetMCPServer returns the underlying MCP server for fx
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// Package mcpserver provides the Model Context Protocol (MCP) server implementation.
//
// The mcpserver package implements an MCP-compliant server that exposes the
// sandbox lifecycle tools. It uses the mark3labs/mcp-go library to handle
// the protocol details and provides initialize_environment and
// stop_container as the interface for managing execution sandboxes.
//
// Tool results are plain text: failures are reported as "Error: ..." text
// content rather than protocol errors, so the calling agent always receives
// an inspectable payload.
//
// The server supports both stdio and HTTP transports as configured by the
// application configuration.
//
// Usage:
//
//	server, err := mcpserver.New(config, logger, lifecycle)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = server.ServeStdio() // or server.ServeHTTP()
package mcpserver

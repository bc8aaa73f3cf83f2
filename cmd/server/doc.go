// Package main is the entry point for the Boxgate MCP server.
//
// Boxgate is a sandbox lifecycle gateway: a Model Context Protocol (MCP)
// server that creates and destroys isolated container environments on
// behalf of an LLM agent that wants to run generated code. It enforces a
// local-only image policy (no implicit network pulls, suitable for
// air-gapped deployments) and guarantees deterministic cleanup through a
// best-effort stop followed by an authoritative force-remove.
//
// The application uses Uber's fx framework for dependency injection and
// lifecycle management, with zap for structured logging and viper for
// configuration.
package main

// Package sandbox provides the sandbox lifecycle gateway.
//
// The sandbox package creates and destroys isolated, ephemeral execution
// environments (containers) on behalf of an untrusted caller. It keeps no
// record of the sandboxes it creates: the container engine is the sole
// source of truth, and the caller is the sole holder of a sandbox identity
// between calls. Images must already be present in the engine's local
// store; the gateway never pulls over the network, so it stays usable in
// air-gapped deployments and image provisioning remains an explicit,
// auditable step.
//
// Usage:
//
//	svc := sandbox.NewService(logger, cfg, factory)
//	id, err := svc.CreateSandbox(ctx, "python:3.12-slim-bookworm")
//	...
//	err = svc.TeardownSandbox(ctx, id)
package sandbox

// Package engine provides access to the container engine control plane.
//
// The engine package defines a narrow Client interface over the container
// lifecycle operations the gateway needs (image inspection, create, start,
// stop, remove) and a Factory that produces clients from an explicit
// connection configuration. The Docker implementation uses the official
// Docker SDK with API version negotiation.
//
// Clients are scoped to a single gateway operation: acquire one from the
// factory, perform the operation, and Close it on every exit path.
//
// Usage:
//
//	factory := engine.NewDockerFactory(cfg)
//	cli, err := factory.NewClient()
//	if err != nil {
//	    return err
//	}
//	defer cli.Close()
//	id, err := cli.CreateContainer(ctx, spec)
package engine

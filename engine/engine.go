package engine

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that the container engine has no record of the
// referenced image or container. Callers can classify engine errors with
// IsNotFound without depending on the engine SDK.
var ErrNotFound = errors.New("not found by container engine")

// ContainerSpec describes a container to be created. The gateway builds an
// identical spec for every sandbox except for the image reference.
type ContainerSpec struct {
	Image      string
	WorkingDir string
	Tty        bool
	OpenStdin  bool
	Cmd        []string
	Limits     Limits
}

// Limits holds optional resource constraints for a container. Zero values
// mean the engine's own defaults apply.
type Limits struct {
	MemoryMB  int
	CPUCores  float64
	PIDsLimit int
}

// Client is the gateway's view of the container engine control API. All
// methods issue blocking network calls and honor the supplied context.
type Client interface {
	// InspectImage checks that the image exists in the engine's local
	// store. It never triggers a network pull.
	InspectImage(ctx context.Context, ref string) error

	// CreateContainer creates a container from the spec and returns the
	// engine-assigned identity.
	CreateContainer(ctx context.Context, spec ContainerSpec) (string, error)

	// StartContainer starts a previously created container.
	StartContainer(ctx context.Context, id string) error

	// StopContainer asks the container's process to exit, waiting up to
	// grace before the engine kills it.
	StopContainer(ctx context.Context, id string, grace time.Duration) error

	// RemoveContainer force-removes the container and its attached
	// volumes regardless of its current state. Removal of a container the
	// engine no longer knows returns an error satisfying IsNotFound.
	RemoveContainer(ctx context.Context, id string) error

	// Close releases the client's connection resources.
	Close() error
}

// Factory produces engine clients. Construction must be cheap; the returned
// client is owned by the caller and must be closed after the operation.
type Factory interface {
	NewClient() (Client, error)
}

// IsNotFound reports whether err indicates the engine has no record of the
// referenced object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package sandbox

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/isdmx/boxgate/config"
	"github.com/isdmx/boxgate/engine"
)

// Lifecycle defines the gateway operations exposed to callers.
type Lifecycle interface {
	// CreateSandbox provisions and starts a new sandbox from imageRef and
	// returns the engine-assigned identity. An empty imageRef selects the
	// configured default image.
	CreateSandbox(ctx context.Context, imageRef string) (string, error)

	// TeardownSandbox stops (best effort) and force-removes the sandbox
	// named by id, including its volumes. Tearing down an identity the
	// engine no longer knows is a success.
	TeardownSandbox(ctx context.Context, id string) error
}

// Service implements Lifecycle against a container engine. It holds no
// per-sandbox state; each call is an independent unit of work and the
// engine's own request handling provides concurrency safety.
type Service struct {
	logger  *zap.Logger
	factory engine.Factory
	cfg     config.SandboxConfig
}

// NewService creates the sandbox lifecycle service.
func NewService(logger *zap.Logger, cfg *config.Config, factory engine.Factory) Lifecycle {
	return &Service{
		logger:  logger,
		factory: factory,
		cfg:     cfg.Sandbox,
	}
}

// CreateSandbox validates the image against the local-only policy, creates
// a container configured to stay alive indefinitely, starts it, and returns
// its identity.
func (s *Service) CreateSandbox(ctx context.Context, imageRef string) (string, error) {
	image := imageRef
	if image == "" {
		image = s.cfg.DefaultImage
	}

	cli, err := s.factory.NewClient()
	if err != nil {
		return "", newError(KindConnection, "failed to connect to container engine", err)
	}
	defer s.release(cli)

	// Local-only image policy: never trigger a network pull. A missing
	// image must be built or loaded before initializing a sandbox.
	if err := cli.InspectImage(ctx, image); err != nil {
		return "", newError(KindImageNotAvailable,
			fmt.Sprintf("image %s not found locally, build or load it before initializing a sandbox", image), err)
	}

	spec := engine.ContainerSpec{
		Image:      image,
		WorkingDir: s.cfg.WorkDir,
		Tty:        true,
		OpenStdin:  true,
		// Block indefinitely so the sandbox stays addressable for
		// follow-up operations instead of exiting after start.
		Cmd: []string{"sleep", "infinity"},
		Limits: engine.Limits{
			MemoryMB:  s.cfg.MemoryMB,
			CPUCores:  s.cfg.CPUCores,
			PIDsLimit: s.cfg.PIDsLimit,
		},
	}

	id, err := cli.CreateContainer(ctx, spec)
	if err != nil {
		return "", newError(KindCreateFailed, fmt.Sprintf("failed to create container from image %s", image), err)
	}

	if err := cli.StartContainer(ctx, id); err != nil {
		// The created-but-unstarted container is left in place; the
		// engine keeps the record and the failure is surfaced with it.
		s.logger.Warn("container created but failed to start",
			zap.String("container_id", id),
			zap.String("image", image),
			zap.Error(err))
		return "", newError(KindStartFailed, fmt.Sprintf("failed to start container %s", id), err)
	}

	s.logger.Info("sandbox created",
		zap.String("container_id", id),
		zap.String("image", image))

	return id, nil
}

// TeardownSandbox stops the container with a bounded grace period and then
// force-removes it along with its volumes. The stop result is advisory;
// only the removal result is authoritative.
func (s *Service) TeardownSandbox(ctx context.Context, id string) error {
	if id == "" {
		return newError(KindMissingIdentity, "container_id is required", nil)
	}

	cli, err := s.factory.NewClient()
	if err != nil {
		return newError(KindConnection, "failed to connect to container engine", err)
	}
	defer s.release(cli)

	// Best-effort stop. The container may already be stopped, gone, or
	// wedged; removal below reclaims it regardless.
	grace := time.Duration(s.cfg.StopTimeoutSec) * time.Second
	if err := cli.StopContainer(ctx, id, grace); err != nil {
		s.logger.Debug("stop failed, proceeding to removal",
			zap.String("container_id", id),
			zap.Error(err))
	}

	if err := cli.RemoveContainer(ctx, id); err != nil {
		if engine.IsNotFound(err) {
			s.logger.Info("sandbox already removed", zap.String("container_id", id))
			return nil
		}
		return newError(KindRemovalFailed, fmt.Sprintf("failed to remove container %s", id), err)
	}

	s.logger.Info("sandbox removed", zap.String("container_id", id))
	return nil
}

func (s *Service) release(cli engine.Client) {
	if err := cli.Close(); err != nil {
		s.logger.Warn("failed to release engine client", zap.Error(err))
	}
}

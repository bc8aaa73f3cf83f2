package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/isdmx/boxgate/config"
)

// DockerFactory produces Docker API clients from an explicit connection
// configuration. Reading the standard Docker environment variables is the
// config layer's job; the factory never consults the process environment.
type DockerFactory struct {
	cfg config.DockerConfig
}

// NewDockerFactory creates a Factory backed by the Docker Engine API.
func NewDockerFactory(cfg *config.Config) Factory {
	return &DockerFactory{cfg: cfg.Docker}
}

// NewClient connects to the Docker daemon, negotiating the highest API
// version both sides support unless a version is pinned in configuration.
func (f *DockerFactory) NewClient() (Client, error) {
	cli, err := client.NewClientWithOpts(clientOpts(f.cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &dockerClient{cli: cli}, nil
}

// clientOpts assembles the SDK options for the given connection config.
func clientOpts(cfg config.DockerConfig) []client.Opt {
	var opts []client.Opt

	if cfg.Host != "" {
		opts = append(opts, client.WithHost(cfg.Host))
	}
	if cfg.TLSVerify && cfg.CertPath != "" {
		opts = append(opts, client.WithTLSClientConfig(
			filepath.Join(cfg.CertPath, "ca.pem"),
			filepath.Join(cfg.CertPath, "cert.pem"),
			filepath.Join(cfg.CertPath, "key.pem"),
		))
	}
	if cfg.APIVersion != "" {
		opts = append(opts, client.WithVersion(cfg.APIVersion))
	} else {
		opts = append(opts, client.WithAPIVersionNegotiation())
	}

	return opts
}

// dockerClient adapts the Docker SDK to the Client interface.
type dockerClient struct {
	cli *client.Client
}

func (d *dockerClient) InspectImage(ctx context.Context, ref string) error {
	_, err := d.cli.ImageInspect(ctx, ref)
	if err != nil {
		if client.IsErrNotFound(err) {
			return fmt.Errorf("image %s: %w", ref, ErrNotFound)
		}
		return fmt.Errorf("failed to inspect image %s: %w", ref, err)
	}
	return nil
}

func (d *dockerClient) CreateContainer(ctx context.Context, spec ContainerSpec) (string, error) {
	cfg, hostCfg := containerConfig(spec)
	resp, err := d.cli.ContainerCreate(ctx, cfg, hostCfg, nil, nil, "")
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (d *dockerClient) StartContainer(ctx context.Context, id string) error {
	return d.cli.ContainerStart(ctx, id, container.StartOptions{})
}

func (d *dockerClient) StopContainer(ctx context.Context, id string, grace time.Duration) error {
	seconds := int(grace.Seconds())
	return d.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: &seconds})
}

func (d *dockerClient) RemoveContainer(ctx context.Context, id string) error {
	err := d.cli.ContainerRemove(ctx, id, container.RemoveOptions{
		RemoveVolumes: true,
		Force:         true,
	})
	if err != nil && client.IsErrNotFound(err) {
		return fmt.Errorf("container %s: %w", id, ErrNotFound)
	}
	return err
}

func (d *dockerClient) Close() error {
	return d.cli.Close()
}

// containerConfig maps a ContainerSpec onto the Docker container and host
// configuration structures. Unset limits are left at the engine defaults.
func containerConfig(spec ContainerSpec) (*container.Config, *container.HostConfig) {
	cfg := &container.Config{
		Image:      spec.Image,
		WorkingDir: spec.WorkingDir,
		Tty:        spec.Tty,
		OpenStdin:  spec.OpenStdin,
		StdinOnce:  false,
		Cmd:        spec.Cmd,
	}

	hostCfg := &container.HostConfig{}
	if spec.Limits.MemoryMB > 0 {
		hostCfg.Resources.Memory = int64(spec.Limits.MemoryMB) * 1024 * 1024
	}
	if spec.Limits.CPUCores > 0 {
		hostCfg.Resources.NanoCPUs = int64(spec.Limits.CPUCores * 1e9)
	}
	if spec.Limits.PIDsLimit > 0 {
		pids := int64(spec.Limits.PIDsLimit)
		hostCfg.Resources.PidsLimit = &pids
	}

	return cfg, hostCfg
}

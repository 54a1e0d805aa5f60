package docker

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"

	"github.com/atlas-128/convertDecimaltoBase32/internal/core/domain"
	"github.com/atlas-128/convertDecimaltoBase32/internal/core/ports"
)

// Adapter implements ports.ContainerService against the Docker Engine API.
type Adapter struct {
	cli *client.Client
}

// NewAdapter creates a Docker adapter from the environment (DOCKER_HOST etc.).
func NewAdapter() (*Adapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Adapter{cli: cli}, nil
}

// ListContainers returns the running containers.
func (a *Adapter) ListContainers(ctx context.Context) ([]domain.Container, error) {
	containers, err := a.cli.ContainerList(ctx, types.ContainerListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	result := make([]domain.Container, 0, len(containers))
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}

		ports := make([]string, 0, len(c.Ports))
		for _, p := range c.Ports {
			if p.PublicPort > 0 {
				ports = append(ports, fmt.Sprintf("%d->%d/%s", p.PublicPort, p.PrivatePort, p.Type))
			}
		}

		result = append(result, domain.Container{
			ID:     c.ID[:12],
			Name:   name,
			Image:  c.Image,
			Status: c.Status,
			State:  c.State,
			Ports:  strings.Join(ports, ", "),
		})
	}
	return result, nil
}

// RunContainer creates and starts a container from the image, publishing the
// service port. The image is pulled only when it is not available locally, so
// freshly built local tags work without a registry.
func (a *Adapter) RunContainer(ctx context.Context, image string, opts ports.RunOptions) (string, error) {
	if err := a.ensureImage(ctx, image); err != nil {
		return "", err
	}

	name := opts.Name
	if name == "" {
		name = "b32d-" + uuid.NewString()[:8]
	}

	cfg := &container.Config{
		Image: image,
	}
	hostCfg := &container.HostConfig{}

	if opts.ContainerPort > 0 {
		port, err := nat.NewPort("tcp", strconv.Itoa(opts.ContainerPort))
		if err != nil {
			return "", fmt.Errorf("invalid container port %d: %w", opts.ContainerPort, err)
		}
		hostPort := ""
		if opts.HostPort > 0 {
			hostPort = strconv.Itoa(opts.HostPort)
		}
		cfg.ExposedPorts = nat.PortSet{port: struct{}{}}
		hostCfg.PortBindings = nat.PortMap{
			port: []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: hostPort}},
		}
	}

	resp, err := a.cli.ContainerCreate(ctx, cfg, hostCfg, nil, nil, name)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := a.cli.ContainerStart(ctx, resp.ID, types.ContainerStartOptions{}); err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	return resp.ID, nil
}

// ensureImage pulls the image only when the engine does not already have it.
func (a *Adapter) ensureImage(ctx context.Context, image string) error {
	if _, _, err := a.cli.ImageInspectWithRaw(ctx, image); err == nil {
		return nil
	}

	reader, err := a.cli.ImagePull(ctx, image, types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", image, err)
	}
	defer reader.Close()
	_, _ = io.Copy(io.Discard, reader)
	return nil
}

// StopContainer stops a running container with a fixed grace period.
func (a *Adapter) StopContainer(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := a.cli.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", id, err)
	}
	return nil
}

// GetContainerLogs returns the container's log stream.
func (a *Adapter) GetContainerLogs(ctx context.Context, id string) (io.ReadCloser, error) {
	options := types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
	}
	logs, err := a.cli.ContainerLogs(ctx, id, options)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs for %s: %w", id, err)
	}
	return logs, nil
}

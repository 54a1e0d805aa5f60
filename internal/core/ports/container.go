package ports

import (
	"context"
	"io"

	"github.com/atlas-128/convertDecimaltoBase32/internal/core/domain"
)

// RunOptions controls how a service container is started.
type RunOptions struct {
	// Name for the container; generated when empty.
	Name string
	// ContainerPort the service listens on inside the container.
	ContainerPort int
	// HostPort to publish the service port on. Zero lets the engine pick.
	HostPort int
}

// ContainerService defines the container lifecycle operations the CLI needs.
// Keeping this behind an interface lets the engine implementation change
// without touching the commands.
type ContainerService interface {
	ListContainers(ctx context.Context) ([]domain.Container, error)
	RunContainer(ctx context.Context, image string, opts RunOptions) (string, error)
	StopContainer(ctx context.Context, id string) error
	GetContainerLogs(ctx context.Context, id string) (io.ReadCloser, error)
}

package builder

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/go-git/go-git/v5"

	"github.com/atlas-128/convertDecimaltoBase32/internal/core/ports"
)

// Adapter implements ports.BuilderService using the Docker Engine API.
type Adapter struct {
	cli *client.Client
}

// NewBuilderAdapter creates a builder from the environment.
func NewBuilderAdapter() (*Adapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Adapter{cli: cli}, nil
}

// BuildImage builds the image described by req. A repository URL is
// shallow-cloned into a temporary context; otherwise the local context
// directory is used as-is. A context without a Dockerfile gets the rendered
// image spec written in.
func (a *Adapter) BuildImage(ctx context.Context, req ports.BuildRequest) (string, error) {
	contextDir := req.ContextDir

	if req.RepoURL != "" {
		tmpDir, err := os.MkdirTemp("", "b32d-build-*")
		if err != nil {
			return "", fmt.Errorf("failed to create temp dir: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		_, err = git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{
			URL:   req.RepoURL,
			Depth: 1, // shallow clone, only the tip matters for a build
		})
		if err != nil {
			return "", fmt.Errorf("failed to clone %s: %w", req.RepoURL, err)
		}
		contextDir = tmpDir
	}

	if contextDir == "" {
		return "", fmt.Errorf("no build context: set a context directory or a repository URL")
	}
	if _, err := os.Stat(contextDir); err != nil {
		return "", fmt.Errorf("build context %s: %w", contextDir, err)
	}

	if err := ensureDockerfile(contextDir, req); err != nil {
		return "", err
	}

	tar, err := archive.TarWithOptions(contextDir, &archive.TarOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to create build context: %w", err)
	}

	resp, err := a.cli.ImageBuild(ctx, tar, types.ImageBuildOptions{
		Tags:       []string{req.ImageName},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build image: %w", err)
	}
	defer resp.Body.Close()

	if err := drainBuildOutput(resp.Body); err != nil {
		return "", fmt.Errorf("build of %s failed: %w", req.ImageName, err)
	}

	return req.ImageName, nil
}

// ensureDockerfile writes the rendered spec into the context when the context
// carries no Dockerfile of its own.
func ensureDockerfile(contextDir string, req ports.BuildRequest) error {
	path := filepath.Join(contextDir, "Dockerfile")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	rendered, err := req.Spec.Render()
	if err != nil {
		return fmt.Errorf("invalid image spec: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write Dockerfile: %w", err)
	}
	return nil
}

type buildLine struct {
	Stream      string `json:"stream"`
	ErrorDetail *struct {
		Message string `json:"message"`
	} `json:"errorDetail"`
	Error string `json:"error"`
}

// drainBuildOutput consumes the engine's JSON build stream and surfaces the
// first error it reports. The stream must be read fully for the build to run
// to completion.
func drainBuildOutput(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var line buildLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			continue // non-JSON noise in the stream
		}
		if line.Error != "" {
			return fmt.Errorf("%s", line.Error)
		}
		if line.ErrorDetail != nil && line.ErrorDetail.Message != "" {
			return fmt.Errorf("%s", line.ErrorDetail.Message)
		}
	}
	return scanner.Err()
}

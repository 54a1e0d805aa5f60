// Package imagespec models the ordered container build instructions that
// package the service: base image, working directory, copied files, exposed
// port, and launch command. A Spec is consumed at build time only; rendering
// never mutates it.
package imagespec

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Copy is a single COPY instruction.
type Copy struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"`
}

// Spec is the ordered set of instructions that produce a runnable image.
type Spec struct {
	BaseImage string   `yaml:"base_image"`
	Workdir   string   `yaml:"workdir"`
	Copies    []Copy   `yaml:"copy"`
	Expose    int      `yaml:"expose"`
	Cmd       []string `yaml:"cmd"`
}

// Default returns the spec that packages this service the way it ships:
// minimal base, the binary at /app, port 8000, four workers.
func Default() Spec {
	return Spec{
		BaseImage: "alpine:3.20",
		Workdir:   "/app",
		Copies: []Copy{
			{Src: "b32d", Dst: "/app/b32d"},
		},
		Expose: 8000,
		Cmd:    []string{"/app/b32d", "serve", "--host", "0.0.0.0", "--port", "8000", "--workers", "4"},
	}
}

// Load reads a spec from a YAML file.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to read image spec: %w", err)
	}
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("failed to parse image spec: %w", err)
	}
	return s, nil
}

// Validate checks the instruction set before rendering.
func (s Spec) Validate() error {
	if s.BaseImage == "" {
		return fmt.Errorf("base image must not be empty")
	}
	if s.Expose < 1 || s.Expose > 65535 {
		return fmt.Errorf("invalid exposed port %d: must be in [1,65535]", s.Expose)
	}
	if len(s.Cmd) == 0 {
		return fmt.Errorf("launch command must not be empty")
	}
	// When the launch command carries a worker count, it must be positive.
	for i, arg := range s.Cmd {
		if arg != "--workers" {
			continue
		}
		if i+1 >= len(s.Cmd) {
			return fmt.Errorf("--workers flag has no value")
		}
		n, err := strconv.Atoi(s.Cmd[i+1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid worker count %q: must be a positive integer", s.Cmd[i+1])
		}
	}
	return nil
}

// Render produces the Dockerfile text for this spec, instructions in order.
func (s Spec) Render() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FROM %s\n\n", s.BaseImage)
	if s.Workdir != "" {
		fmt.Fprintf(&b, "WORKDIR %s\n\n", s.Workdir)
	}
	for _, c := range s.Copies {
		fmt.Fprintf(&b, "COPY %s %s\n", c.Src, c.Dst)
	}
	if len(s.Copies) > 0 {
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "EXPOSE %d\n\n", s.Expose)
	fmt.Fprintf(&b, "CMD [%s]\n", quoteArgs(s.Cmd))
	return b.String(), nil
}

func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = strconv.Quote(a)
	}
	return strings.Join(quoted, ", ")
}

package builder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-128/convertDecimaltoBase32/internal/core/ports"
	"github.com/atlas-128/convertDecimaltoBase32/internal/imagespec"
)

func TestEnsureDockerfileWritesSpec(t *testing.T) {
	dir := t.TempDir()
	req := ports.BuildRequest{ImageName: "b32d:test", Spec: imagespec.Default()}

	require.NoError(t, ensureDockerfile(dir, req))

	data, err := os.ReadFile(filepath.Join(dir, "Dockerfile"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "FROM alpine:3.20")
	assert.Contains(t, string(data), "EXPOSE 8000")
}

func TestEnsureDockerfileKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	original := "FROM scratch\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte(original), 0644))

	req := ports.BuildRequest{ImageName: "b32d:test", Spec: imagespec.Default()}
	require.NoError(t, ensureDockerfile(dir, req))

	data, err := os.ReadFile(filepath.Join(dir, "Dockerfile"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestEnsureDockerfileInvalidSpec(t *testing.T) {
	req := ports.BuildRequest{ImageName: "b32d:test", Spec: imagespec.Spec{}}
	err := ensureDockerfile(t.TempDir(), req)
	assert.Error(t, err)
}

func TestDrainBuildOutput(t *testing.T) {
	ok := `{"stream":"Step 1/5 : FROM alpine:3.20"}
{"stream":" ---> abc123"}
{"stream":"Successfully built abc123"}
`
	assert.NoError(t, drainBuildOutput(strings.NewReader(ok)))

	failed := `{"stream":"Step 2/5 : RUN false"}
{"errorDetail":{"message":"The command '/bin/sh -c false' returned a non-zero code: 1"},"error":"The command '/bin/sh -c false' returned a non-zero code: 1"}
`
	err := drainBuildOutput(strings.NewReader(failed))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-zero code")
}

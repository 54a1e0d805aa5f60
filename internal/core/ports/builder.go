package ports

import (
	"context"

	"github.com/atlas-128/convertDecimaltoBase32/internal/imagespec"
)

// BuildRequest describes one image build.
type BuildRequest struct {
	// ContextDir is a local build context. Ignored when RepoURL is set.
	ContextDir string
	// RepoURL, when set, is shallow-cloned into a temporary build context.
	RepoURL string
	// ImageName is the tag for the built image.
	ImageName string
	// Spec is rendered into the context as its Dockerfile when the context
	// has none.
	Spec imagespec.Spec
}

// BuilderService builds the service image from a local directory or a git
// repository.
type BuilderService interface {
	// BuildImage produces the image and returns its tag. A dependency or
	// instruction failure aborts the build; nothing is tagged.
	BuildImage(ctx context.Context, req BuildRequest) (string, error)
}

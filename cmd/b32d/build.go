package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlas-128/convertDecimaltoBase32/internal/adapters/builder"
	"github.com/atlas-128/convertDecimaltoBase32/internal/core/ports"
	"github.com/atlas-128/convertDecimaltoBase32/internal/imagespec"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the service image",
	Long: `Build the container image from a local context directory or a git
repository. A context without a Dockerfile gets the rendered image spec.`,
	RunE: runBuild,
}

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Print the rendered Dockerfile for the image spec",
	RunE:  runSpec,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(specCmd)

	buildCmd.Flags().String("context", ".", "build context directory")
	buildCmd.Flags().String("repo", "", "git repository URL to build from")
	buildCmd.Flags().String("tag", "", "image tag (default from config)")
	buildCmd.Flags().String("spec", "", "image spec YAML (default: built-in)")

	specCmd.Flags().String("spec", "", "image spec YAML (default: built-in)")
}

func loadSpec(cmd *cobra.Command) (imagespec.Spec, error) {
	path, _ := cmd.Flags().GetString("spec")
	if path == "" {
		return imagespec.Default(), nil
	}
	return imagespec.Load(path)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	spec, err := loadSpec(cmd)
	if err != nil {
		return err
	}

	tag, _ := cmd.Flags().GetString("tag")
	if tag == "" {
		tag = cfg.Image.Name
	}
	contextDir, _ := cmd.Flags().GetString("context")
	repo, _ := cmd.Flags().GetString("repo")

	b, err := builder.NewBuilderAdapter()
	if err != nil {
		return err
	}

	log := newLogger(cfg, "build")
	log.Infof("building image %s", tag)

	image, err := b.BuildImage(cmd.Context(), ports.BuildRequest{
		ContextDir: contextDir,
		RepoURL:    repo,
		ImageName:  tag,
		Spec:       spec,
	})
	if err != nil {
		return err
	}

	log.Infof("built image %s", image)
	return nil
}

func runSpec(cmd *cobra.Command, args []string) error {
	spec, err := loadSpec(cmd)
	if err != nil {
		return err
	}
	rendered, err := spec.Render()
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

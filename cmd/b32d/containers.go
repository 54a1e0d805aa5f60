package main

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/atlas-128/convertDecimaltoBase32/internal/adapters/docker"
	"github.com/atlas-128/convertDecimaltoBase32/internal/core/ports"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a container from the service image",
	RunE:  runRun,
}

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List containers",
	RunE:  runPs,
}

var stopCmd = &cobra.Command{
	Use:   "stop <container-id>",
	Short: "Stop a container",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

var logsCmd = &cobra.Command{
	Use:   "logs <container-id>",
	Short: "Print container logs",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogs,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(logsCmd)

	runCmd.Flags().String("image", "", "image to run (default from config)")
	runCmd.Flags().String("name", "", "container name (generated when empty)")
	runCmd.Flags().Int("publish", 0, "host port to publish the service port on (0 = engine picks)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	image, _ := cmd.Flags().GetString("image")
	if image == "" {
		image = cfg.Image.Name
	}
	name, _ := cmd.Flags().GetString("name")
	publish, _ := cmd.Flags().GetInt("publish")

	adapter, err := docker.NewAdapter()
	if err != nil {
		return err
	}

	id, err := adapter.RunContainer(cmd.Context(), image, ports.RunOptions{
		Name:          name,
		ContainerPort: cfg.Server.Port,
		HostPort:      publish,
	})
	if err != nil {
		return err
	}

	fmt.Println(id[:12])
	return nil
}

func runPs(cmd *cobra.Command, args []string) error {
	adapter, err := docker.NewAdapter()
	if err != nil {
		return err
	}

	containers, err := adapter.ListContainers(cmd.Context())
	if err != nil {
		return err
	}
	if len(containers) == 0 {
		fmt.Println("No containers running")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Image", "State", "Status", "Ports")
	for _, c := range containers {
		table.Append(c.ID, c.Name, c.Image, c.State, c.Status, c.Ports)
	}
	table.Render()
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	adapter, err := docker.NewAdapter()
	if err != nil {
		return err
	}
	return adapter.StopContainer(cmd.Context(), args[0])
}

func runLogs(cmd *cobra.Command, args []string) error {
	adapter, err := docker.NewAdapter()
	if err != nil {
		return err
	}

	logs, err := adapter.GetContainerLogs(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer logs.Close()

	_, err = io.Copy(os.Stdout, logs)
	return err
}

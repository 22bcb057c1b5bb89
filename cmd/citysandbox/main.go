package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
)

func main() {
	logger.Init()

	rootCmd := &cobra.Command{
		Use:   "citysandbox",
		Short: "Headless 3D city-building sandbox engine",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the HTTP and WebSocket server for interactive clients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides sandbox.yaml)")
	return cmd
}

func simulateCmd() *cobra.Command {
	var project string
	var outcome bool

	cmd := &cobra.Command{
		Use:   "simulate [script]",
		Short: "Replay a gesture script headlessly and print the scene as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSimulate(args[0], project, outcome)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project directory containing sandbox.yaml")
	cmd.Flags().BoolVar(&outcome, "outcome", false, "print the gesture tally instead of the scene")
	return cmd
}

func snapshotCmd() *cobra.Command {
	var project, out string
	var size int

	cmd := &cobra.Command{
		Use:   "snapshot [script]",
		Short: "Replay a gesture script and render the city top-down to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSnapshot(args[0], project, out, size)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project directory containing sandbox.yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "city.png", "output PNG path")
	cmd.Flags().IntVar(&size, "size", 800, "image width and height in pixels")
	return cmd
}

func validateCmd() *cobra.Command {
	var script string

	cmd := &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate sandbox.yaml and, optionally, a gesture script",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], script)
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "gesture script to validate as well")
	return cmd
}

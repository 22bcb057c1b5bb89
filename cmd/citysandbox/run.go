package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sivasanjeevs/3D-City-Builder/internal/server"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/config"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/sandbox"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/snapshot"
)

// loadAndValidate loads the project configuration and validates it.
func loadAndValidate(projectPath string) (*config.Config, error) {
	cfg, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	report := config.Validate(cfg)
	if err := report.Err(); err != nil {
		printValidationReport(report)
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, projectPath string, port int) error {
	cfg, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(projectPath, cfg).Start(ctx)
}

// replay builds a sandbox for the project and runs the script against it.
func replay(scriptPath, projectPath string) (*sandbox.Sandbox, *sandbox.Outcome, error) {
	cfg := config.Default()
	if projectPath != "" {
		var err error
		if cfg, err = loadAndValidate(projectPath); err != nil {
			return nil, nil, err
		}
	}

	script, err := sandbox.LoadScript(scriptPath)
	if err != nil {
		return nil, nil, err
	}
	report := sandbox.ValidateScript(script)
	if err := report.Err(); err != nil {
		printValidationReport(report)
		return nil, nil, fmt.Errorf("script: %w", err)
	}

	sb := sandbox.New(cfg)
	out, err := sb.RunScript(script)
	if err != nil {
		return nil, nil, fmt.Errorf("running script: %w", err)
	}
	return sb, out, nil
}

func runSimulate(scriptPath, projectPath string, outcome bool) error {
	// stdout carries the JSON result.
	logger.Silence()

	sb, out, err := replay(scriptPath, projectPath)
	if err != nil {
		return err
	}

	var v any = sb.Export()
	if outcome {
		v = out
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runSnapshot(scriptPath, projectPath, outPath string, size int) error {
	sb, out, err := replay(scriptPath, projectPath)
	if err != nil {
		return err
	}

	doc := sb.Export()
	report := scene.ValidateDocument(doc)
	if err := report.Err(); err != nil {
		printValidationReport(report)
		return fmt.Errorf("scene: %w", err)
	}

	opts := snapshot.DefaultOptions()
	opts.Size = size
	if err := snapshot.SavePNG(doc, outPath, opts); err != nil {
		return err
	}

	fmt.Printf("Snapshot written to %s\n", outPath)
	printOutcome(out)
	return nil
}

func runValidate(projectPath, scriptPath string) error {
	cfg, err := config.LoadProject(projectPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	report := config.Validate(cfg)

	if scriptPath != "" {
		script, err := sandbox.LoadScript(scriptPath)
		if err != nil {
			return err
		}
		report.Merge(sandbox.ValidateScript(script))
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

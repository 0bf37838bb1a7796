// Package cli implements the framewright command-line interface.
//
// This package provides commands for creating and inspecting framework
// assemblies, running resolve passes, diffing configurations, rendering
// elevations, managing the persistence backend and serving the HTTP
// API. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - new: Create an assembly and seed its node chain
//   - show: Print an assembly's chain and metadata
//   - resolve: Run a position resolve pass and persist the result
//   - diff: Compare two assemblies structurally
//   - render: Write an SVG elevation
//   - store: Inspect and manage the persistence backend
//   - edit: Interactive chain editor
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/framewright/framewright/pkg/buildinfo"
	"github.com/framewright/framewright/pkg/cache"
	"github.com/framewright/framewright/pkg/config"
)

// appName is the application name used for directories and display.
const appName = "framewright"

// Execute runs the framewright CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		cfgPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Framewright lays out parametric framework assemblies",
		Long:         `Framewright is a CLI tool for building linear framework assemblies (columns joined by window, door and blanking panels), resolving their positions incrementally and rendering elevations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (TOML)")

	root.AddCommand(newNewCmd(&cfgPath))
	root.AddCommand(newShowCmd(&cfgPath))
	root.AddCommand(newResolveCmd(&cfgPath))
	root.AddCommand(newDiffCmd(&cfgPath))
	root.AddCommand(newRenderCmd(&cfgPath))
	root.AddCommand(newStoreCmd(&cfgPath))
	root.AddCommand(newEditCmd(&cfgPath))
	root.AddCommand(newServeCmd(&cfgPath))

	return root.ExecuteContext(ctx)
}

// loadConfig loads the config file if given, otherwise returns built-in
// defaults.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newRenderCache opens the elevation render cache, falling back to a
// null cache when disabled or when no cache directory is available.
func newRenderCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard
// (~/.cache/framewright/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

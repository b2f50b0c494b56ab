package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/cache"
	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartkit"

	// defaultMeasurer names the text measurer used when --measurer is unset.
	defaultMeasurer = "estimate"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// measurer is the value of the persistent --measurer flag.
	measurer string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		measurer: defaultMeasurer,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "chartkit",
		Short: "Chartkit computes chart geometry",
		Long: `Chartkit is a chart geometry engine. It reads line and bar chart definitions
(TOML or JSON) and computes everything needed to draw them: axis ticks, wrapped
labels, margins, SVG paths and bar rectangles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.measurer, "measurer", defaultMeasurer,
		"text measurer: estimate (default), goregular, cells")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	m, err := newMeasurer(c.measurer)
	if err != nil {
		return nil, err
	}
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cache, nil, c.Logger)
	runner.SetMeasurer(c.measurer, m)
	return runner, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newMeasurer resolves a --measurer value. Font-backed measurers are
// memoized since every label is measured several times per layout.
func newMeasurer(name string) (textmetrics.Measurer, error) {
	switch name {
	case "", "estimate":
		return textmetrics.Default(), nil
	case "cells":
		return textmetrics.Cells{}, nil
	case "goregular":
		face, err := textmetrics.NewGoRegular()
		if err != nil {
			return nil, err
		}
		return textmetrics.NewCached(face, 0)
	}
	return nil, cerrors.New(cerrors.ErrCodeInvalidInput,
		"unknown measurer %q (must be estimate, goregular or cells)", name)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chartkit/).
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

// Package cli implements the arbor command-line interface.
//
// This package provides commands for analyzing a character's skill-tree
// allocation, finding nearby high-value nodes, running the optimizer, and
// exporting allocation diagrams. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Classify an allocation (archetype, efficiency, point counts)
//   - nearby: List unallocated notables within reach of the allocation
//   - optimize: Propose node swaps that improve a chosen objective
//   - export: Render the allocation neighborhood as DOT or SVG
//   - cache: Manage the raw tree-data cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/exilemind/arbor/pkg/buildinfo"
	"github.com/exilemind/arbor/pkg/cache"
	"github.com/exilemind/arbor/pkg/errors"
	"github.com/exilemind/arbor/pkg/treedata"
)

// appName is the application name used for directories and display.
const appName = "arbor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger and the config
// loaded from disk (or defaults when no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: LoadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Arbor analyzes and optimizes skill-tree allocations",
		Long:         `Arbor is a CLI tool for working with character skill trees: it classifies an allocation's build archetype, grades pathing efficiency, finds nearby high-value nodes, and runs a constrained optimizer that proposes improving swaps.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.nearbyCommand())
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// newStore builds the versioned tree store all commands resolve trees
// through: HTTP source with file-backed raw caching, plus the configured
// one-hop version fallback.
func (c *CLI) newStore(noCache bool) (*treedata.Store, error) {
	rawCache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	// Prefix entries with a schema tag so a future entry-format change can
	// bump it instead of invalidating by hand.
	rawCache = cache.NewNamespaced(rawCache, "v1:")
	src, err := treedata.NewHTTPSource(c.Config.SourceURL, nil, rawCache)
	if err != nil {
		return nil, err
	}
	return treedata.NewStore(src, c.Config.FallbackVersion), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory: the validated config override when
// set, otherwise the XDG standard location (~/.cache/arbor/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.Config.CacheDir; dir != "" {
		if err := errors.ValidateCachePath(dir); err != nil {
			return "", err
		}
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

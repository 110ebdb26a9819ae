// Package cli implements the findline command-line interface.
//
// This package provides commands for tracing leader lines in scanned
// technical drawings, inspecting the intermediate skeleton, and managing
// the skeleton cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - trace: Trace a line through user-given points and write the annotated
//     image and selection mask
//   - skeleton: Dump the monochrome or thinned bitmap for a drawing
//   - cache: Manage the skeleton cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/findline/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/findline/pkg/buildinfo"
	"github.com/matzehuels/findline/pkg/cache"
	"github.com/matzehuels/findline/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = "findline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "findline",
		Short:        "Findline traces leader lines in scanned technical drawings",
		Long:         `Findline is a CLI tool for tracing leader lines in scanned engineering drawings: give it a few points along a line and it follows the ink between them, producing a pixel-exact selection mask and an annotated overlay.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetPipelineHooks(stageLogger{c.Logger})
			observability.SetCacheHooks(cacheLogger{c.Logger})
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.traceCommand())
	root.AddCommand(c.skeletonCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache returns the skeleton cache, or a null cache when caching is
// disabled or the cache directory cannot be determined.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/findline/).
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

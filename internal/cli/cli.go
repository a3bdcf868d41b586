// Package cli implements the kgviz command-line interface.
//
// This package provides commands for converting knowledge-graph documents
// into D3.js force-directed graph documents and for serving the same
// conversion over HTTP. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - convert: Convert one knowledge-graph document to a graph document
//   - serve: Run the conversion HTTP service
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr; status lines go to stdout.
package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kgviz/pkg/buildinfo"
	"github.com/matzehuels/kgviz/pkg/config"
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

	// Persistent flags
	configPath string
	rootDir    string
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
		Use:           "kgviz",
		Short:         "kgviz converts knowledge graphs into D3.js graph documents",
		Long:          `kgviz reads a knowledge-graph document (entities and relations wrapped in a result envelope) and writes a node/link document for D3.js force-directed layouts.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.Filename+" in the root directory, if present)")
	root.PersistentFlags().StringVar(&c.rootDir, "root", "", "directory all reads and writes are confined to (default: working directory)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig resolves the configuration for a command: defaults, then the
// config file, then --root.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, path, err := config.Discover(c.configPath, c.rootDir)
	if err != nil {
		return cfg, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = c.rootDir
	}
	return cfg, nil
}

// =============================================================================
// Errors
// =============================================================================

// reportedError marks an error whose message the command already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already shown to the user, so main
// should not print it again.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

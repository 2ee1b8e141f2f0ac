// Package cli implements the seatmap command-line interface.
//
// The serve command exposes the floor plan editor over MCP (stdio or
// streamable HTTP) and JSON-RPC. The import, export and stats commands work
// on the configured store directly.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/seatmap/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// CLI holds state shared by all commands.
type CLI struct {
	configPath string
	verbose    bool

	cfg config.Config
}

// Execute runs the seatmap CLI.
func Execute(ctx context.Context) error {
	return New().RootCommand().ExecuteContext(ctx)
}

// New creates a CLI with default settings.
func New() *CLI {
	return &CLI{cfg: config.Default()}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "seatmap",
		Short:         "seatmap edits and serves a café floor plan",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if c.verbose {
				cfg.Log.Level = "debug"
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("seatmap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML config file (default $SEATMAP_CONFIG_PATH)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.statsCommand())

	return root
}

// logger builds the logger for a one-shot command. Logs go to stderr so
// command output on stdout stays clean.
func (c *CLI) logger() (*slog.Logger, func(), error) {
	return newLogger(c.cfg.Log.Level, c.cfg.Log.Path, true)
}

// Package cli implements the platter command-line interface.
//
// # Commands
//
//   - run: open a window on a page layout, optionally replaying a script
//   - check: validate a layout and script, simulate them headlessly and
//     report where every disc came to rest
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI whose logger writes to w at level.
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
		Use:          "platter",
		Short:        "Platter is a scrolling page of discs you can throw around",
		SilenceUsage: true,
	}
	root.AddCommand(c.runCommand())
	root.AddCommand(c.checkCommand())
	return root
}

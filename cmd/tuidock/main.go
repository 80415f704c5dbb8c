// Package main implements tuidock, a terminal docking workspace.
// Tabs live in stacks that can be split, rearranged and torn off into
// floating windows by dragging them with the mouse, and the arrangement is
// saved between runs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	themeName  string
	layoutName string
	noSave     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tuidock",
		Short: "Terminal docking workspace",
		Long: `tuidock - a terminal docking workspace

Tabs live in stacks that can be split, rearranged and torn off into
floating windows by dragging them with the mouse. The layout is saved
when you quit and restored on the next start.`,
		Example: `  # Run tuidock
  tuidock

  # Use a named layout
  tuidock --layout work

  # Run as SSH server
  tuidock ssh --port 2222

  # Show the saved layout
  tuidock layout show

  # List all keybindings
  tuidock keybinds list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&layoutName, "layout", "", "Layout to restore and save (overrides the config)")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme (overrides the config)")
	rootCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the layout on exit")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run tuidock as SSH server",
		Long: `Run tuidock as an SSH server

Every connection gets its own workspace. Layouts are saved per SSH user.
The server will generate a host key automatically if not specified.`,
		Example: `  # Start SSH server on default port
  tuidock ssh

  # Start on custom port
  tuidock ssh --port 2222`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	rootCmd.AddCommand(sshCmd, newConfigCmd(), newKeybindsCmd(), newLayoutCmd())

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

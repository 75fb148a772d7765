// Package cli provides the command-line interface for tcplite.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tcplite",
	Short: "Minimal sequential TCP greeting server",
	Long: `Minimal sequential TCP greeting server.

tcplite binds a listening socket to the given address, accepts one client at
a time and performs a fixed greeting/acknowledgement exchange before closing
the connection and accepting the next one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

// Package configcmd provides the config management subcommands.
package configcmd

import "github.com/spf13/cobra"

// NewCmdConfig groups the configuration subcommands.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage maistat configuration",
		Long:  `Commands for viewing, checking, and clearing maistat configuration.`,
	}
	cmd.AddCommand(NewCmdShow(), NewCmdCheck(), NewCmdClear())
	return cmd
}

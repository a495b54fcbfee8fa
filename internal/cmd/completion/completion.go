// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

const shellLong = `Generate %[1]s completion script for maistat.

To load completions in your current shell session:

  %[2]s

To load completions for every new session:

  %[3]s`

// target describes one shell the completion command can emit a script for.
type target struct {
	name     string
	load     string
	install  string
	generate func(cmd *cobra.Command) error
}

func targets() []target {
	return []target{
		{
			name:    "bash",
			load:    "source <(maistat completion bash)",
			install: "maistat completion bash > /etc/bash_completion.d/maistat",
			generate: func(cmd *cobra.Command) error {
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			},
		},
		{
			name:    "zsh",
			load:    "source <(maistat completion zsh)",
			install: `maistat completion zsh > "${fpath[1]}/_maistat"`,
			generate: func(cmd *cobra.Command) error {
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			},
		},
		{
			name:    "fish",
			load:    "maistat completion fish | source",
			install: "maistat completion fish > ~/.config/fish/completions/maistat.fish",
			generate: func(cmd *cobra.Command) error {
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			},
		},
		{
			name:    "powershell",
			load:    "maistat completion powershell | Out-String | Invoke-Expression",
			install: "maistat completion powershell >> $PROFILE",
			generate: func(cmd *cobra.Command) error {
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			},
		},
	}
}

// NewCmdCompletion creates the completion command with one subcommand
// per supported shell.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for maistat.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, t := range targets() {
		cmd.AddCommand(newShellCmd(t))
	}

	return cmd
}

func newShellCmd(t target) *cobra.Command {
	return &cobra.Command{
		Use:   t.name,
		Short: fmt.Sprintf("Generate %s completion script", t.name),
		Long:  fmt.Sprintf(shellLong, t.name, t.load, t.install),
		Example: fmt.Sprintf("  # Load in current session\n  %s\n\n  # Install permanently\n  %s",
			t.load, t.install),
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return t.generate(cmd)
		},
	}
}

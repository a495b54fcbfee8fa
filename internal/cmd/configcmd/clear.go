package configcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Choimoe/MaidataStatistic/internal/config"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the maistat configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  maistat config clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runClear(noColor)
		},
	}
}

func runClear(noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	path := config.DefaultConfigPath()
	green := color.New(color.FgGreen)

	switch err := os.Remove(path); {
	case err == nil:
		_, _ = green.Printf("✓ Configuration cleared from %s\n", path)
	case os.IsNotExist(err):
		_, _ = green.Println("✓ No config file to remove")
	default:
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	if active := activeEnvVars(); len(active) > 0 {
		dim := color.New(color.Faint)
		_, _ = dim.Printf("\nNote: Environment variables will still be used: %s\n", strings.Join(active, ", "))
	}

	return nil
}

// activeEnvVars lists the maistat environment overrides currently set.
func activeEnvVars() []string {
	var active []string
	for _, v := range []string{"MAISTAT_LIBRARY_ROOT", "MAISTAT_FILE_NAME", "MAISTAT_OUTPUT_FORMAT"} {
		if os.Getenv(v) != "" {
			active = append(active, v)
		}
	}
	return active
}

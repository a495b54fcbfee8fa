package configcmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Choimoe/MaidataStatistic/internal/config"
	"github.com/Choimoe/MaidataStatistic/internal/library"
)

// NewCmdCheck creates the config check command.
func NewCmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the configured chart library",
		Long:  `Check that the configured library root exists and count the chart files under it.`,
		Example: `  # Check the library
  maistat config check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runCheck(noColor)
		},
	}

	return cmd
}

func runCheck(noColor bool, cfgs ...*config.Config) error {
	if noColor {
		color.NoColor = true
	}

	var cfg *config.Config
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	} else {
		var err error
		cfg, err = config.LoadWithEnv(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'maistat init' to configure)", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w (run 'maistat init' to configure)", err)
		}
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fileName := cfg.FileName
	if fileName == "" {
		fileName = library.DefaultFileName
	}

	fmt.Printf("Checking library at %s...\n", cfg.LibraryRoot)

	info, err := os.Stat(cfg.LibraryRoot)
	if err != nil {
		red.Println("✗ Library root missing")
		fmt.Println("\nCheck your configuration with: maistat config show")
		fmt.Println("Reconfigure with: maistat init")
		return fmt.Errorf("library root %s does not exist", cfg.LibraryRoot)
	}
	if !info.IsDir() {
		red.Println("✗ Library root is not a directory")
		return fmt.Errorf("library root %s is not a directory", cfg.LibraryRoot)
	}
	green.Println("✓ Library root exists")

	results, err := library.Scanner{Root: cfg.LibraryRoot, FileName: fileName}.Scan()
	if err != nil {
		return err
	}

	playable := 0
	unreadable := 0
	for _, res := range results {
		if res.Err != nil {
			red.Printf("✗ %s: %v\n", res.Path, res.Err)
			unreadable++
			continue
		}
		if res.Matched {
			playable++
		}
	}

	if len(results) == 0 {
		red.Printf("✗ No chart files named %s found\n", fileName)
		return fmt.Errorf("no chart files named %s under %s", fileName, cfg.LibraryRoot)
	}

	green.Printf("✓ Found %d chart files (%d with note data)\n", len(results), playable)
	if unreadable > 0 {
		return fmt.Errorf("%d chart files could not be read", unreadable)
	}

	return nil
}

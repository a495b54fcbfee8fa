// Package init provides the init command for maistat.
package init

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Choimoe/MaidataStatistic/internal/config"
	"github.com/Choimoe/MaidataStatistic/internal/library"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		root     string
		noInput  bool
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize maistat configuration",
		Long: `Initialize maistat with your chart library location.

This command will guide you through setting up the library root, the
chart file name to scan for, and the default output format. The
configuration will be saved to ~/.config/maistat/config.yml.

The library root is the directory holding your song folders; each
song folder carries one chart file (maidata.txt by convention).`,
		Example: `  # Interactive setup
  maistat init

  # Pre-populate the library root
  maistat init --root ~/charts

  # Scripted setup without prompts
  maistat init --root ~/charts --no-input`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runInit(root, noInput, noVerify, configPath)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Chart library root (directory of song folders)")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Skip prompts and use flag values only")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip library root verification")

	return cmd
}

func runInit(prefillRoot string, noInput, noVerify bool, configPath string) error {
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Confirm before clobbering an existing config
	if _, err := os.Stat(configPath); err == nil && !noInput {
		var overwrite bool
		confirm := huh.NewConfirm().
			Title("Existing configuration found").
			Description(fmt.Sprintf("Replace %s?", configPath)).
			Value(&overwrite)
		if err := confirm.Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Keeping the existing configuration.")
			return nil
		}
	}

	cfg := &config.Config{LibraryRoot: prefillRoot}

	if !noInput {
		cfg.OutputFormat = "table"

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Library root").
					Description("Directory holding your song folders").
					Placeholder("~/charts").
					Value(&cfg.LibraryRoot).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("library root is required")
						}
						return nil
					}),

				huh.NewInput().
					Title("Chart file name").
					Description("File scanned for in each song folder (empty for maidata.txt)").
					Placeholder(library.DefaultFileName).
					Value(&cfg.FileName),

				huh.NewSelect[string]().
					Title("Default output format").
					Options(huh.NewOptions("table", "json", "plain")...).
					Value(&cfg.OutputFormat),
			),
		)

		if err := form.Run(); err != nil {
			return err
		}
	}

	if cfg.LibraryRoot == "" {
		return fmt.Errorf("library root is required (--root with --no-input)")
	}
	cfg.LibraryRoot = expandPath(cfg.LibraryRoot)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !noVerify {
		fmt.Print("Verifying library root... ")
		if err := verifyRoot(cfg.LibraryRoot); err != nil {
			fmt.Println("failed")
			return err
		}
		fmt.Println("ok")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nSetup complete. Try:")
	fmt.Println("  maistat analyze --pattern 1,8,1,8")
	fmt.Println("  maistat info <song>/maidata.txt")

	return nil
}

func verifyRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("library root %s does not exist", root)
	}
	if !info.IsDir() {
		return fmt.Errorf("library root %s is not a directory", root)
	}
	return nil
}

// expandPath resolves a leading ~ so paths typed into the form work
// the way shells make people expect.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

package configcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Choimoe/MaidataStatistic/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current maistat configuration with source indicators.`,
		Example: `  # Show current config
  maistat config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(noColor)
		},
	}
}

// field is one configuration entry of the show listing: its label, the
// effective and file-level values, and the env vars that can override it.
type field struct {
	label     string
	value     string
	fileValue string
	envVars   []string
}

func runShow(noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	configPath := config.DefaultConfigPath()

	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}
	cfg, _ := config.LoadWithEnv(configPath)

	fields := []field{
		{"Library root", cfg.LibraryRoot, fileCfg.LibraryRoot, []string{"MAISTAT_LIBRARY_ROOT"}},
		{"File name", cfg.FileName, fileCfg.FileName, []string{"MAISTAT_FILE_NAME"}},
		{"Output format", cfg.OutputFormat, fileCfg.OutputFormat, []string{"MAISTAT_OUTPUT_FORMAT"}},
		{"Default pattern", strings.Join(cfg.DefaultPattern, ","), strings.Join(fileCfg.DefaultPattern, ","), nil},
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	for _, f := range fields {
		_, _ = bold.Printf("%-17s", f.label+":")
		if f.value == "" {
			_, _ = dim.Println("-")
			continue
		}
		fmt.Print(f.value)
		_, _ = dim.Printf("  (source: %s)\n", f.source(fileErr == nil))
	}

	fmt.Println()
	_, _ = dim.Printf("Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Println("(file not found)")
	}

	return nil
}

// source names where the effective value came from: the overriding env
// var, the config file, or "-" when neither explains it.
func (f field) source(haveFile bool) string {
	for _, envVar := range f.envVars {
		if v := os.Getenv(envVar); v != "" && v == f.value {
			return envVar
		}
	}
	if haveFile && f.fileValue == f.value {
		return "config"
	}
	return "-"
}

// Package root provides the root command for the maistat CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/Choimoe/MaidataStatistic/internal/cmd/analyze"
	"github.com/Choimoe/MaidataStatistic/internal/cmd/completion"
	"github.com/Choimoe/MaidataStatistic/internal/cmd/configcmd"
	"github.com/Choimoe/MaidataStatistic/internal/cmd/info"
	initcmd "github.com/Choimoe/MaidataStatistic/internal/cmd/init"
	"github.com/Choimoe/MaidataStatistic/internal/cmd/serve"
	"github.com/Choimoe/MaidataStatistic/internal/cmd/transform"
	"github.com/Choimoe/MaidataStatistic/internal/version"
)

// NewCmdRoot creates the root command for maistat.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maistat",
		Short: "Analyze and transform simai rhythm charts",
		Long: `maistat is a CLI tool for working with simai chart notation,
the Maidata.txt format of maimai-style rhythm games.

It inspects chart files, finds lane patterns across whole song
libraries, rewrites charts into derived variants, and can serve
pattern searches over HTTP.

Get started by running: maistat init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/maistat/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format, one of: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(
		initcmd.NewCmdInit(),
		info.NewCmdInfo(),
		analyze.NewCmdAnalyze(),
		transform.NewCmdTransform(),
		serve.NewCmdServe(),
		configcmd.NewCmdConfig(),
		completion.NewCmdCompletion(),
	)

	return cmd
}

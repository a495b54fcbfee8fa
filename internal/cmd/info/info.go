// Package info provides the info command for inspecting a chart file.
package info

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Choimoe/MaidataStatistic/internal/util"
	"github.com/Choimoe/MaidataStatistic/internal/view"
	"github.com/Choimoe/MaidataStatistic/pkg/maidata"
	"github.com/Choimoe/MaidataStatistic/pkg/simai"
)

type infoOptions struct {
	path     string
	warnings bool

	output  string
	noColor bool
}

// infoDocument is the JSON shape of the info command output.
type infoDocument struct {
	*maidata.File
	Warnings []string `json:"warnings,omitempty"`
}

// NewCmdInfo creates the info command.
func NewCmdInfo() *cobra.Command {
	opts := &infoOptions{}

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show metadata and charts of a maidata file",
		Long: `Parse a maidata.txt file and show its metadata directives and charts.

For every chart the table lists its number, level, charter, note-data
line count, and the number of time slots in its temporal sequence.`,
		Example: `  # Inspect a song
  maistat info ./SongA/maidata.txt

  # Include consistency warnings
  maistat info ./SongA/maidata.txt --warnings

  # Full parse result as JSON
  maistat info ./SongA/maidata.txt -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.path = args[0]
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runInfo(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.warnings, "warnings", "w", false, "Report missing metadata and empty charts")

	return cmd
}

func runInfo(opts *infoOptions) error {
	// Validate output format
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	f, err := maidata.ParseFile(opts.path)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if opts.output == "json" {
		doc := infoDocument{File: f}
		if opts.warnings {
			doc.Warnings = f.Warnings()
		}
		return renderer.RenderJSON(doc)
	}

	// Song-level metadata; chart-numbered directives show up in the
	// chart table instead.
	for _, key := range util.SortedKeys(f.Metadata) {
		if isChartKey(key) {
			continue
		}
		renderer.RenderKeyValue(key, f.Metadata[key])
	}

	if len(f.Charts) > 0 {
		renderer.RenderText("")
		headers := []string{"NUMBER", "LEVEL", "DESCRIPTION", "LINES", "SLOTS"}
		var rows [][]string
		for _, c := range f.Charts {
			slots := simai.TemporalRoots(c.NoteData)
			rows = append(rows, []string{
				strconv.Itoa(c.Number),
				c.Level,
				view.Truncate(c.Description, 30),
				strconv.Itoa(len(c.NoteData)),
				strconv.Itoa(len(slots)),
			})
		}
		renderer.RenderTable(headers, rows)
	}

	if opts.warnings {
		warnings := f.Warnings()
		if len(warnings) == 0 {
			renderer.Success("No warnings.")
		}
		for _, w := range warnings {
			renderer.Warning(w)
		}
	}

	return nil
}

// isChartKey reports whether a metadata key belongs to a numbered chart
// directive family (lv_2, des_4, ...).
func isChartKey(key string) bool {
	for _, prefix := range []string{"lv_", "des_"} {
		if suffix, ok := strings.CutPrefix(key, prefix); ok {
			if _, err := strconv.Atoi(suffix); err == nil {
				return true
			}
		}
	}
	return false
}
